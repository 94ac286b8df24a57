package classify

import (
	"strings"

	"github.com/fluxo-dev/fluxo/internal/model"
)

// Side selects which rules apply to a transaction based on its money flow.
type Side int

const (
	// Inflow rules match transactions with amount_in > 0.
	Inflow Side = iota
	// Outflow rules match everything else.
	Outflow
)

// Rule maps description keywords to a classification triple. Rules are data:
// extending the table requires no change to the matcher.
type Rule struct {
	Side     Side
	Keywords []string
	Triple   model.Classification
}

// DefaultRules returns the built-in keyword table for the default Brazilian
// chart of accounts.
func DefaultRules() []Rule {
	return []Rule{
		{
			Side:     Inflow,
			Keywords: []string{"serviço", "consultoria", "projeto"},
			Triple: model.Classification{
				Level1: "1.0 RECEITAS OPERACIONAIS",
				Level2: "1.1 Receita de Vendas/Serviços",
				Level3: "1.1.2 Prestação de Serviços",
			},
		},
		{
			Side:     Inflow,
			Keywords: []string{"venda", "produto"},
			Triple: model.Classification{
				Level1: "1.0 RECEITAS OPERACIONAIS",
				Level2: "1.1 Receita de Vendas/Serviços",
				Level3: "1.1.1 Venda de Produtos",
			},
		},
		{
			Side:     Inflow,
			Keywords: []string{"juros", "rendimento"},
			Triple: model.Classification{
				Level1: "3.0 RESULTADO FINANCEIRO",
				Level2: "3.1 Receitas Financeiras",
				Level3: "3.1.1 Rendimentos de Aplicações",
			},
		},
		{
			Side:     Outflow,
			Keywords: []string{"aluguel", "condomínio"},
			Triple: model.Classification{
				Level1: "2.0 CUSTOS E DESPESAS OPERACIONAIS",
				Level2: "2.3 Despesas Administrativas",
				Level3: "2.3.1 Aluguel e Condomínio",
			},
		},
		{
			Side:     Outflow,
			Keywords: []string{"salário", "pagamento funcionário"},
			Triple: model.Classification{
				Level1: "2.0 CUSTOS E DESPESAS OPERACIONAIS",
				Level2: "2.2 Despesas com Pessoal",
				Level3: "2.2.1 Salários e Ordenados",
			},
		},
		{
			Side:     Outflow,
			Keywords: []string{"material", "papelaria", "escritório"},
			Triple: model.Classification{
				Level1: "2.0 CUSTOS E DESPESAS OPERACIONAIS",
				Level2: "2.3 Despesas Administrativas",
				Level3: "2.3.3 Materiais de Escritório",
			},
		},
		{
			Side:     Outflow,
			Keywords: []string{"internet", "telefone", "comunicação"},
			Triple: model.Classification{
				Level1: "2.0 CUSTOS E DESPESAS OPERACIONAIS",
				Level2: "2.3 Despesas Administrativas",
				Level3: "2.3.4 Comunicação e Internet",
			},
		},
		{
			Side:     Outflow,
			Keywords: []string{"marketing", "publicidade", "propaganda"},
			Triple: model.Classification{
				Level1: "2.0 CUSTOS E DESPESAS OPERACIONAIS",
				Level2: "2.4 Despesas Comerciais",
				Level3: "2.4.1 Marketing e Publicidade",
			},
		},
	}
}

// Suggest scans the rule table in order and returns the triple of the first
// rule whose side matches the transaction's flow and whose keywords appear
// in the lower-cased description. The second return is false when no rule
// matches.
func Suggest(t *model.Transaction, rules []Rule) (model.Classification, bool) {
	side := Outflow
	if t.AmountIn.IsPositive() {
		side = Inflow
	}
	desc := strings.ToLower(t.Description)
	for _, r := range rules {
		if r.Side != side {
			continue
		}
		for _, kw := range r.Keywords {
			if strings.Contains(desc, kw) {
				return r.Triple, true
			}
		}
	}
	return model.Classification{}, false
}
