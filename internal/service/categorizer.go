package service

import "strings"

// keywordRule maps a set of lowercase keywords to a category label. Rules are
// checked in order and the first keyword found in the description wins.
type keywordRule struct {
	category string
	keywords []string
}

// Expense rules come first so that descriptions like "Pagamento Uber" land on
// transporte rather than an income category. Keywords carry both accented and
// unaccented spellings because imported bank statements have both.
var expenseRules = []keywordRule{
	{"moradia", []string{"aluguel", "condomínio", "condominio", "luz", "energia", "água", "agua", "internet", "iptu"}},
	{"alimentação", []string{"mercado", "supermercado", "ifood", "restaurante", "lanche", "padaria", "feira"}},
	{"transporte", []string{"uber", "taxi", "táxi", "ônibus", "onibus", "metrô", "metro", "gasolina", "combustível", "combustivel", "estacionamento", "pedágio", "pedagio"}},
	{"saúde", []string{"farmácia", "farmacia", "médico", "medico", "consulta", "exame", "academia", "plano de saúde", "plano de saude"}},
	{"educação", []string{"curso", "faculdade", "escola", "livro", "mensalidade", "apostila"}},
	{"lazer", []string{"cinema", "netflix", "spotify", "show", "viagem", "bar", "festa", "jogo"}},
	{"vestuário", []string{"roupa", "tênis", "tenis", "sapato", "camisa", "calça", "calca", "loja"}},
}

var incomeRules = []keywordRule{
	{"salário", []string{"salário", "salario", "holerite", "contracheque"}},
	{"freelance", []string{"freelance", "freela", "bico"}},
	{"investimentos", []string{"dividendo", "rendimento", "juros", "resgate"}},
}

// Categorize guesses a category from a free-text description. It never fails:
// unknown descriptions fall back to "outros".
func Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, rules := range [][]keywordRule{expenseRules, incomeRules} {
		for _, rule := range rules {
			for _, kw := range rule.keywords {
				if strings.Contains(desc, kw) {
					return rule.category
				}
			}
		}
	}
	return "outros"
}
