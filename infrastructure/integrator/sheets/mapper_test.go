package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func transactionHeader() []string {
	return []string{
		"Member ID", "Name", "Email", "Paying Member ID", "Sale Item ID",
		"Category", "Membership Type", "Date", "Value", "Credits", "VAT",
		"Item", "Status", "Method", "Transaction ID", "Token", "Sold By",
		"Reference", "Location", "Cleaned Product", "Cleaned Category",
	}
}

func TestMapTransactionTable(t *testing.T) {
	values := [][]string{
		transactionHeader(),
		{
			"M1", "Ana", "ana@example.com", "M1", "S1",
			"Planos - Mensal", "Mensal", "05/03/2025", "1.234,56", "10", "123,45",
			"Plano Mensal", "pago", "cartão", "T1", "tok1", "Vendedor A",
			"ref1", "Centro", "Plano Mensal", "Planos",
		},
	}

	sales, err := MapTransactionTable(values)

	assert.NoError(t, err)
	assert.Len(t, sales, 1)
	assert.Equal(t, "M1", sales[0].MemberID)
	assert.Equal(t, "05/03/2025", sales[0].Date)
	assert.Equal(t, 1234.56, sales[0].Value)
	assert.Equal(t, 123.45, sales[0].VAT)
	// a categoria bruta e a higienizada vêm de colunas distintas
	assert.Equal(t, "Planos - Mensal", sales[0].RawCategory)
	assert.Equal(t, "Planos", sales[0].Category)
	assert.Equal(t, "Plano Mensal", sales[0].Product)
}

func TestMapTransactionTableIgnoraLinhaSemMembro(t *testing.T) {
	values := [][]string{
		transactionHeader(),
		{"", "Linha de total", "", "", "", "", "", "", "999", "", ""},
		{"M2", "Bia", "", "", "", "", "", "10/04/2025", "50"},
	}

	sales, err := MapTransactionTable(values)

	assert.NoError(t, err)
	assert.Len(t, sales, 1)
	assert.Equal(t, "M2", sales[0].MemberID)
	// linhas mais curtas que o cabeçalho têm as colunas faltantes vazias
	assert.Equal(t, "", sales[0].Location)
	assert.Equal(t, 0.0, sales[0].VAT)
}

func TestMapTransactionTableCabecalhoIncompleto(t *testing.T) {
	values := [][]string{
		{"Member ID", "Name", "Date", "Value"},
		{"M1", "Ana", "05/03/2025", "100"},
	}

	sales, err := MapTransactionTable(values)

	assert.Nil(t, sales)

	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Missing, "vat")
	assert.Contains(t, schemaErr.Missing, "cleaned category")
	assert.Empty(t, schemaErr.Duplicated)
}

func TestMapTransactionTableCabecalhoDuplicado(t *testing.T) {
	header := append(transactionHeader(), "Value")
	values := [][]string{header}

	sales, err := MapTransactionTable(values)

	assert.Nil(t, sales)

	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"value"}, schemaErr.Duplicated)
}

func TestMapTransactionTableVazia(t *testing.T) {
	sales, err := MapTransactionTable(nil)

	assert.NoError(t, err)
	assert.Empty(t, sales)
}

func cohortHeader() []string {
	return []string{
		"Location", "Month", "New Members", "Retained",
		"Converted", "Lifetime Value", "Conversion Span",
	}
}

func TestMapCohortTable(t *testing.T) {
	values := [][]string{
		cohortHeader(),
		{"Norte", "Jan 2025", "80", "40", "10", "20000", "500"},
		{"Centro", "Jan 2025", "100", "60", "25", "50000", "1250"},
		{"Norte", "Feb 2025", "90", "45", "12", "24000", "600"},
	}

	cohorts, err := MapCohortTable(values)

	assert.NoError(t, err)
	assert.Len(t, cohorts, 2)

	// as unidades saem na ordem de primeira aparição, com os meses agrupados
	assert.Equal(t, "Norte", cohorts[0].Location)
	assert.Equal(t, []string{"Jan 2025", "Feb 2025"}, cohorts[0].Months)
	assert.Equal(t, []int{80, 90}, cohorts[0].NewMembers)
	assert.Equal(t, []float64{20000, 24000}, cohorts[0].LifetimeValue)

	assert.Equal(t, "Centro", cohorts[1].Location)
	assert.Equal(t, []int{25}, cohorts[1].Converted)
	assert.Equal(t, []float64{1250}, cohorts[1].ConversionSpanDays)
}

func TestMapCohortTableCabecalhoIncompleto(t *testing.T) {
	values := [][]string{
		{"Location", "Month", "New Members"},
	}

	cohorts, err := MapCohortTable(values)

	assert.Nil(t, cohorts)

	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Missing, "retained")
	assert.Contains(t, schemaErr.Missing, "lifetime value")
}

func TestMapCohortTableIgnoraLinhaIncompleta(t *testing.T) {
	values := [][]string{
		cohortHeader(),
		{"Centro", "", "100", "60", "25", "50000", "1250"},
		{"", "Jan 2025", "100", "60", "25", "50000", "1250"},
		{"Centro", "Jan 2025", "100", "60", "25", "50000", "1250"},
	}

	cohorts, err := MapCohortTable(values)

	assert.NoError(t, err)
	assert.Len(t, cohorts, 1)
	assert.Len(t, cohorts[0].Months, 1)
}
