package fiscalization

import (
	"strings"

	"github.com/ataliba/contratos-service/internal/model"
)

// Template keys, also stored on the report row.
const (
	TemplateContinuousService = "continuous-service"
	TemplatePublicWorks       = "public-works"
	TemplateGoodsAcquisition  = "goods-acquisition"
	TemplateGeneric           = "generic"
)

type templateRule struct {
	key      string
	keywords []string
}

// First matching keyword wins; everything else falls through to the
// generic template.
var templateRules = []templateRule{
	{TemplateContinuousService, []string{"continuad", "terceiriza", "limpeza", "vigilância", "vigilancia"}},
	{TemplatePublicWorks, []string{"obra", "engenharia", "reforma"}},
	{TemplateGoodsAcquisition, []string{"aquisi", "material", "equipamento", "fornecimento"}},
}

// SelectTemplate classifies an agreement category into one of the four
// report templates by case-insensitive substring match.
func SelectTemplate(category string) string {
	normalized := strings.ToLower(strings.TrimSpace(category))
	for _, rule := range templateRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalized, keyword) {
				return rule.key
			}
		}
	}
	return TemplateGeneric
}

// BuildContent instantiates the empty section/field payload for a
// template key. The workflow itself never looks at the shape again; the
// technical overseer fills it in place while the report is editable.
func BuildContent(template string) model.ReportContent {
	switch template {
	case TemplateContinuousService:
		return model.ReportContent{
			{
				Key:   "execucao",
				Title: "Execução dos serviços",
				Fields: []model.ReportField{
					boolField("regularidade", "A prestação dos serviços ocorreu regularmente no período?"),
					boolField("efetivo", "O efetivo alocado corresponde ao exigido em contrato?"),
					boolField("materiais", "Os materiais e insumos previstos foram disponibilizados?"),
					textField("ocorrencias", "Ocorrências registradas no período"),
				},
			},
			{
				Key:   "obrigacoes",
				Title: "Obrigações trabalhistas e fiscais",
				Fields: []model.ReportField{
					boolField("folha", "A folha de pagamento dos empregados foi comprovada?"),
					boolField("encargos", "Os encargos previdenciários e FGTS foram recolhidos?"),
					textField("pendencias", "Pendências identificadas"),
				},
			},
		}
	case TemplatePublicWorks:
		return model.ReportContent{
			{
				Key:   "andamento",
				Title: "Andamento da obra",
				Fields: []model.ReportField{
					boolField("cronograma", "A execução está aderente ao cronograma físico-financeiro?"),
					boolField("diario", "O diário de obra está atualizado?"),
					boolField("seguranca", "As normas de segurança do trabalho estão sendo cumpridas?"),
					textField("medicao", "Resumo da medição do período"),
				},
			},
			{
				Key:   "qualidade",
				Title: "Qualidade e conformidade",
				Fields: []model.ReportField{
					boolField("especificacoes", "Os serviços executados atendem às especificações do projeto?"),
					textField("ressalvas", "Ressalvas técnicas"),
				},
			},
		}
	case TemplateGoodsAcquisition:
		return model.ReportContent{
			{
				Key:   "entregas",
				Title: "Entregas do período",
				Fields: []model.ReportField{
					boolField("prazo", "As entregas ocorreram dentro do prazo contratual?"),
					boolField("quantidade", "As quantidades entregues conferem com as notas fiscais?"),
					boolField("qualidade", "Os bens recebidos atendem às especificações?"),
					textField("devolucoes", "Devoluções ou recusas de recebimento"),
				},
			},
		}
	default:
		return model.ReportContent{
			{
				Key:   "acompanhamento",
				Title: "Acompanhamento geral",
				Fields: []model.ReportField{
					boolField("regularidade", "O objeto contratual está sendo executado regularmente?"),
					boolField("documentacao", "A documentação exigida foi apresentada?"),
					textField("observacoes", "Observações do fiscal"),
				},
			},
		}
	}
}

func boolField(key, label string) model.ReportField {
	return model.ReportField{Key: key, Label: label, Kind: model.FieldBoolean}
}

func textField(key, label string) model.ReportField {
	return model.ReportField{Key: key, Label: label, Kind: model.FieldNarrative}
}
