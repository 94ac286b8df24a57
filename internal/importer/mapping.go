package importer

import "strings"

// field identifies a logical transaction column in an arbitrary bank export.
type field string

const (
	fieldDate     field = "date"
	fieldDesc     field = "description"
	fieldIn       field = "in"
	fieldOut      field = "out"
	fieldAmount   field = "amount"
	fieldBank     field = "bank"
	fieldPayee    field = "payee"
	fieldCategory field = "category"
	fieldNotes    field = "notes"
)

// aliases maps each field to the header substrings that select it, covering
// Portuguese, English and Spanish bank exports.
var aliases = map[field][]string{
	fieldDate:     {"data", "date", "dt", "fecha"},
	fieldDesc:     {"descricao", "description", "desc", "historico", "memo", "observacao"},
	fieldIn:       {"entrada", "credito", "credit", "receita", "income"},
	fieldOut:      {"saida", "debito", "debit", "despesa", "expense"},
	fieldAmount:   {"valor", "amount", "quantia", "montante", "total"},
	fieldBank:     {"banco", "bank", "conta", "account", "instituicao", "agencia"},
	fieldPayee:    {"favorecido", "beneficiario", "payee", "pagador", "destinatario"},
	fieldCategory: {"categoria", "category", "classificacao"},
	fieldNotes:    {"observacoes", "notes", "obs", "comentarios", "remarks"},
}

// matchOrder keeps mapping deterministic; description claims its columns
// before notes so an "observação" header is not stolen by the "obs" alias.
var matchOrder = []field{
	fieldDate, fieldDesc, fieldIn, fieldOut,
	fieldAmount, fieldBank, fieldPayee, fieldCategory, fieldNotes,
}

var accentFolder = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "î", "i", "ï", "i",
	"ó", "o", "ô", "o", "õ", "o", "ö", "o",
	"ú", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
)

func foldHeader(h string) string {
	return accentFolder.Replace(strings.TrimSpace(strings.ToLower(h)))
}

// mapColumns resolves header names to column indexes by accent-folded
// substring match. When no date or description column is recognized the
// first and second columns are assumed, which callers surface as a warning
// rather than a failure.
func mapColumns(headers []string) map[field]int {
	folded := make([]string, len(headers))
	for i, h := range headers {
		folded[i] = foldHeader(h)
	}

	columns := make(map[field]int)
	taken := make(map[int]bool)
	for _, f := range matchOrder {
	next:
		for i, h := range folded {
			if taken[i] {
				continue
			}
			for _, alias := range aliases[f] {
				if strings.Contains(h, alias) {
					columns[f] = i
					taken[i] = true
					break next
				}
			}
		}
	}

	if _, ok := columns[fieldDate]; !ok && len(headers) > 0 {
		columns[fieldDate] = 0
	}
	if _, ok := columns[fieldDesc]; !ok && len(headers) > 1 {
		columns[fieldDesc] = 1
	}
	return columns
}
