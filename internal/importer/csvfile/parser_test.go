package csvfile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarques/smartbooks/internal/importer/csvfile"
)

const sampleCSV = `date,type,status,source_account_id,destination_account_id,amount,purpose,category_id,tags
2024-01-05,income,completed,1,2,500.00,Paycheck,10,salary|monthly
2024-01-06,expense,pending,2,1,"1,234.56",Rent,,housing
`

func TestParser_Parse(t *testing.T) {
	p := csvfile.NewParser()

	records, err := p.Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	require.NotNil(t, first.Date)
	assert.Equal(t, "2024-01-05", *first.Date)
	assert.Equal(t, "income", *first.Type)
	assert.Equal(t, "completed", *first.Status)
	assert.Equal(t, "1", *first.SourceAccountID)
	assert.Equal(t, "2", *first.DestinationAccountID)
	assert.Equal(t, "500", *first.Amount)
	assert.Equal(t, "Paycheck", *first.Purpose)
	assert.Equal(t, "10", *first.CategoryID)
	assert.Equal(t, []string{"salary", "monthly"}, first.Tags)

	second := records[1]
	assert.Equal(t, "1234.56", *second.Amount)
	assert.Nil(t, second.CategoryID)
	assert.Equal(t, []string{"housing"}, second.Tags)
}

func TestParser_EmptyCellsBecomeAbsentFields(t *testing.T) {
	p := csvfile.NewParser()

	input := "date,type,status,source_account_id,destination_account_id,amount,purpose\n" +
		"2024-01-05,,completed,1,2,,Lunch\n"

	records, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Nil(t, records[0].Type)
	assert.Nil(t, records[0].Amount)
	assert.NotNil(t, records[0].Purpose)
	assert.Nil(t, records[0].Tags)
}

func TestParser_SkipsBlankRows(t *testing.T) {
	p := csvfile.NewParser()

	input := "date,type,status,source_account_id,destination_account_id,amount,purpose\n" +
		"2024-01-05,income,completed,1,2,10,Lunch\n" +
		",,,,,,\n" +
		"2024-01-06,expense,completed,2,1,20,Dinner\n"

	records, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestParser_HeaderIsCaseInsensitive(t *testing.T) {
	p := csvfile.NewParser()

	input := "Date,TYPE,Status,Source_Account_ID,Destination_Account_ID,Amount,Purpose\n" +
		"2024-01-05,income,completed,1,2,10,Lunch\n"

	records, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "income", *records[0].Type)
}

func TestParser_MissingRequiredColumn(t *testing.T) {
	p := csvfile.NewParser()

	input := "date,type,status,source_account_id,destination_account_id,purpose\n" +
		"2024-01-05,income,completed,1,2,Lunch\n"

	_, err := p.Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing column "amount"`)
}

func TestParser_EmptyFile(t *testing.T) {
	p := csvfile.NewParser()

	_, err := p.Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParser_BadAmountPassesThrough(t *testing.T) {
	p := csvfile.NewParser()

	// Unparseable amounts are kept verbatim so the validator can name the
	// field in its error.
	input := "date,type,status,source_account_id,destination_account_id,amount,purpose\n" +
		"2024-01-05,income,completed,1,2,abc,Lunch\n"

	records, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "abc", *records[0].Amount)
}

func TestParser_HandlesUTF8BOM(t *testing.T) {
	p := csvfile.NewParser()

	input := "\xef\xbb\xbf" +
		"date,type,status,source_account_id,destination_account_id,amount,purpose\n" +
		"2024-01-05,income,completed,1,2,10,Caf\xc3\xa9\n"

	records, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-01-05", *records[0].Date)
	assert.Equal(t, "Café", *records[0].Purpose)
}
