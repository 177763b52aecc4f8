package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// Cabeçalhos esperados na aba de transações. O acesso às colunas é sempre
// pelo nome do cabeçalho, validado na carga; nunca por posição fixa.
const (
	colMemberID       = "member id"
	colName           = "name"
	colEmail          = "email"
	colPayingMemberID = "paying member id"
	colSaleItemID     = "sale item id"
	colCategory       = "category"
	colMembershipType = "membership type"
	colDate           = "date"
	colValue          = "value"
	colCredits        = "credits"
	colVAT            = "vat"
	colItem           = "item"
	colStatus         = "status"
	colMethod         = "method"
	colTransactionID  = "transaction id"
	colToken          = "token"
	colSoldBy         = "sold by"
	colReference      = "reference"
	colLocation       = "location"
	colCleanProduct   = "cleaned product"
	colCleanCategory  = "cleaned category"
)

var transactionColumns = []string{
	colMemberID, colName, colEmail, colPayingMemberID, colSaleItemID,
	colCategory, colMembershipType, colDate, colValue, colCredits, colVAT,
	colItem, colStatus, colMethod, colTransactionID, colToken, colSoldBy,
	colReference, colLocation, colCleanProduct, colCleanCategory,
}

// Cabeçalhos esperados na aba de coortes, uma linha por (unidade, mês)
const (
	cohortColLocation   = "location"
	cohortColMonth      = "month"
	cohortColNewMembers = "new members"
	cohortColRetained   = "retained"
	cohortColConverted  = "converted"
	cohortColLTV        = "lifetime value"
	cohortColSpan       = "conversion span"
)

var cohortColumns = []string{
	cohortColLocation, cohortColMonth, cohortColNewMembers,
	cohortColRetained, cohortColConverted, cohortColLTV, cohortColSpan,
}

// SchemaError indica que o cabeçalho da planilha não confere com o esperado.
// É um erro estruturado para a API devolver com o código próprio, em vez de
// desalinhar colunas silenciosamente.
type SchemaError struct {
	Sheet      string
	Missing    []string
	Duplicated []string
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("colunas ausentes: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Duplicated) > 0 {
		parts = append(parts, fmt.Sprintf("colunas duplicadas: %s", strings.Join(e.Duplicated, ", ")))
	}
	return fmt.Sprintf("cabeçalho inesperado na aba %s: %s", e.Sheet, strings.Join(parts, "; "))
}

// headerIndex monta o índice nome-normalizado -> posição e valida o
// cabeçalho contra as colunas esperadas
func headerIndex(sheet string, headers []string, expected []string) (map[string]int, error) {
	index := make(map[string]int, len(headers))
	duplicated := make([]string, 0)

	for i, header := range headers {
		name := strings.ToLower(strings.TrimSpace(header))
		if name == "" {
			continue
		}
		if _, exists := index[name]; exists {
			duplicated = append(duplicated, name)
			continue
		}
		index[name] = i
	}

	missing := make([]string, 0)
	for _, column := range expected {
		if _, exists := index[column]; !exists {
			missing = append(missing, column)
		}
	}

	if len(missing) > 0 || len(duplicated) > 0 {
		return nil, &SchemaError{Sheet: sheet, Missing: missing, Duplicated: duplicated}
	}

	return index, nil
}

// cellAt devolve a célula da coluna, tolerando linhas mais curtas que o
// cabeçalho (a API de planilhas omite células vazias no fim da linha)
func cellAt(row []string, index map[string]int, column string) string {
	i := index[column]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func decimalAt(row []string, index map[string]int, column string) float64 {
	value, _ := utils.ParseDecimal(cellAt(row, index, column))
	return value
}

func intAt(row []string, index map[string]int, column string) int {
	value, err := strconv.Atoi(cellAt(row, index, column))
	if err != nil {
		return 0
	}
	return value
}

// MapTransactionTable converte a matriz da aba de transações em registros de
// venda. A primeira linha é o cabeçalho; linhas sem identificador de membro
// são ignoradas.
func MapTransactionTable(values [][]string) ([]domain.Sale, error) {
	if len(values) == 0 {
		return []domain.Sale{}, nil
	}

	index, err := headerIndex("transações", values[0], transactionColumns)
	if err != nil {
		return nil, err
	}

	sales := make([]domain.Sale, 0, len(values)-1)
	for _, row := range values[1:] {
		memberID := cellAt(row, index, colMemberID)
		if memberID == "" {
			continue
		}

		sales = append(sales, domain.Sale{
			MemberID:       memberID,
			MemberName:     cellAt(row, index, colName),
			Email:          cellAt(row, index, colEmail),
			PayingMemberID: cellAt(row, index, colPayingMemberID),
			SaleItemID:     cellAt(row, index, colSaleItemID),
			RawCategory:    cellAt(row, index, colCategory),
			MembershipType: cellAt(row, index, colMembershipType),
			Date:           cellAt(row, index, colDate),
			Value:          decimalAt(row, index, colValue),
			Credits:        decimalAt(row, index, colCredits),
			VAT:            decimalAt(row, index, colVAT),
			Item:           cellAt(row, index, colItem),
			Status:         cellAt(row, index, colStatus),
			Method:         cellAt(row, index, colMethod),
			TransactionID:  cellAt(row, index, colTransactionID),
			Token:          cellAt(row, index, colToken),
			SoldBy:         cellAt(row, index, colSoldBy),
			Reference:      cellAt(row, index, colReference),
			Location:       cellAt(row, index, colLocation),
			Product:        cellAt(row, index, colCleanProduct),
			Category:       cellAt(row, index, colCleanCategory),
		})
	}

	return sales, nil
}

// MapCohortTable converte a matriz da aba de coortes em séries por unidade,
// preservando a ordem de primeira aparição das unidades e dos meses. As
// séries saem paralelas por construção e ainda assim são validadas.
func MapCohortTable(values [][]string) ([]domain.LocationCohort, error) {
	if len(values) == 0 {
		return []domain.LocationCohort{}, nil
	}

	index, err := headerIndex("coortes", values[0], cohortColumns)
	if err != nil {
		return nil, err
	}

	cohorts := make([]domain.LocationCohort, 0)
	indexByLocation := make(map[string]int)

	for _, row := range values[1:] {
		location := cellAt(row, index, cohortColLocation)
		month := cellAt(row, index, cohortColMonth)
		if location == "" || month == "" {
			continue
		}

		i, exists := indexByLocation[location]
		if !exists {
			i = len(cohorts)
			indexByLocation[location] = i
			cohorts = append(cohorts, domain.LocationCohort{Location: location})
		}

		cohorts[i].Months = append(cohorts[i].Months, month)
		cohorts[i].NewMembers = append(cohorts[i].NewMembers, intAt(row, index, cohortColNewMembers))
		cohorts[i].Retained = append(cohorts[i].Retained, intAt(row, index, cohortColRetained))
		cohorts[i].Converted = append(cohorts[i].Converted, intAt(row, index, cohortColConverted))
		cohorts[i].LifetimeValue = append(cohorts[i].LifetimeValue, decimalAt(row, index, cohortColLTV))
		cohorts[i].ConversionSpanDays = append(cohorts[i].ConversionSpanDays, decimalAt(row, index, cohortColSpan))
	}

	for i := range cohorts {
		if err := cohorts[i].Validate(); err != nil {
			return nil, err
		}
	}

	return cohorts, nil
}
