package chart

import "github.com/fluxo-dev/fluxo/internal/model"

// Default returns the standard Brazilian chart of accounts shipped with a
// new state.
func Default() model.Chart {
	return model.Chart{
		Groups: []model.ChartGroup{
			{
				Name: "1.0 RECEITAS OPERACIONAIS",
				Categories: []model.ChartCategory{
					{
						Name: "1.1 Receita de Vendas/Serviços",
						Items: []string{
							"1.1.1 Venda de Produtos",
							"1.1.2 Prestação de Serviços",
							"1.1.3 Receitas de Assinatura",
						},
					},
					{
						Name: "1.2 Outras Receitas Operacionais",
						Items: []string{
							"1.2.1 Receitas Diversas",
							"1.2.2 Recuperação de Despesas",
						},
					},
				},
			},
			{
				Name: "2.0 CUSTOS E DESPESAS OPERACIONAIS",
				Categories: []model.ChartCategory{
					{
						Name: "2.1 Custos Diretos",
						Items: []string{
							"2.1.1 Custo do Produto Vendido",
							"2.1.2 Custo do Serviço Prestado",
							"2.1.3 Matéria Prima",
						},
					},
					{
						Name: "2.2 Despesas com Pessoal",
						Items: []string{
							"2.2.1 Salários e Ordenados",
							"2.2.2 Encargos Sociais",
							"2.2.3 Benefícios",
							"2.2.4 Férias e 13º Salário",
							"2.2.5 FGTS",
						},
					},
					{
						Name: "2.3 Despesas Administrativas",
						Items: []string{
							"2.3.1 Aluguel e Condomínio",
							"2.3.2 Contas de Consumo",
							"2.3.3 Materiais de Escritório",
							"2.3.4 Comunicação e Internet",
							"2.3.5 Honorários Profissionais",
						},
					},
					{
						Name: "2.4 Despesas Comerciais",
						Items: []string{
							"2.4.1 Marketing e Publicidade",
							"2.4.2 Comissões de Vendas",
							"2.4.3 Viagens e Hospedagem",
						},
					},
				},
			},
			{
				Name: "3.0 RESULTADO FINANCEIRO",
				Categories: []model.ChartCategory{
					{
						Name: "3.1 Receitas Financeiras",
						Items: []string{
							"3.1.1 Rendimentos de Aplicações",
							"3.1.2 Juros Ativos",
							"3.1.3 Descontos Obtidos",
						},
					},
					{
						Name: "3.2 Despesas Financeiras",
						Items: []string{
							"3.2.1 Juros de Empréstimos",
							"3.2.2 Tarifas Bancárias",
							"3.2.3 Descontos Concedidos",
							"3.2.4 IOF",
						},
					},
				},
			},
			{
				Name: "4.0 MOVIMENTAÇÕES NÃO-OPERACIONAIS",
				Categories: []model.ChartCategory{
					{
						Name: "4.1 Transferências",
						Items: []string{
							"4.1.1 Transferência Entre Contas",
							"4.1.2 Saldo Inicial",
						},
					},
					{
						Name: "4.2 Investimentos",
						Items: []string{
							"4.2.1 Aplicações Financeiras",
							"4.2.2 Resgates de Aplicações",
						},
					},
					{
						Name: "4.3 Financiamentos",
						Items: []string{
							"4.3.1 Captação de Empréstimos",
							"4.3.2 Amortização de Empréstimos",
						},
					},
				},
			},
		},
	}
}
