package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Pagamento Uber 23/04":      "transporte",
		"Salário mensal":            "salário",
		"Compra no supermercado":    "alimentação",
		"ALUGUEL agosto":            "moradia",
		"Consulta dermatologista":   "saúde",
		"Mensalidade da faculdade":  "educação",
		"Assinatura Netflix":        "lazer",
		"Freela site institucional": "freelance",
		"Dividendo ITSA4":           "investimentos",
		"xyz123":                    "outros",
	}
	for in, want := range cases {
		require.Equal(t, want, Categorize(in), "input %q", in)
	}
}

func TestCategorizeIsTotal(t *testing.T) {
	t.Parallel()
	// Any input, including empty and junk, yields some category.
	for _, in := range []string{"", "    ", "!@#$%", "ação"} {
		require.NotEmpty(t, Categorize(in), "input %q", in)
	}
	require.Equal(t, "outros", Categorize(""))
}

func TestCategorizeExpenseRulesWinOverIncome(t *testing.T) {
	t.Parallel()
	// "pagamento uber" mentions payment but the expense table runs first.
	require.Equal(t, "transporte", Categorize("pagamento uber"))
}
