package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yukikurage/leave-request-manager/internal/models"
)

func sampleRequests() []models.LeaveRequest {
	comment := `Approved, "enjoy"`
	return []models.LeaveRequest{
		{
			ID:            1,
			EmployeeName:  "John Doe",
			StartDate:     models.NewDate(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)),
			EndDate:       models.NewDate(time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)),
			LeaveType:     "Annual Leave",
			Reason:        "Trip, with family\nsecond line",
			Status:        models.LeaveStatusApproved,
			AdminComments: &comment,
			RequestedAt:   time.Date(2024, 6, 1, 9, 5, 0, 0, time.UTC),
		},
		{
			ID:           2,
			EmployeeName: "Jane Roe",
			StartDate:    models.NewDate(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
			EndDate:      models.NewDate(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
			LeaveType:    "Sick Leave",
			Reason:       "Flu",
			Status:       models.LeaveStatusPending,
			RequestedAt:  time.Date(2024, 6, 30, 18, 45, 0, 0, time.UTC),
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		value   string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"csv", FormatCSV, false},
		{"xlsx", FormatXLSX, false},
		{"excel", FormatXLSX, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.value)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedFormat, tt.value)
			continue
		}
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, got)
	}
}

func TestWriteCSV_QuotesAndRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRequests()))

	assert.Contains(t, buf.String(), `"Approved, ""enjoy"""`)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{
		"1", "John Doe", "2024-06-10", "2024-06-14", "Annual Leave",
		"Trip, with family\nsecond line", "Approved", `Approved, "enjoy"`,
		time.Date(2024, 6, 1, 9, 5, 0, 0, time.UTC).Local().Format("2006-01-02 15:04"), "5",
	}, records[1])
	assert.Equal(t, "", records[2][7])
	assert.Equal(t, "1", records[2][9])
}

func TestWriteCSV_EmptyHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestWriteXLSX_ReadBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleRequests()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "John Doe", rows[1][1])
	assert.Equal(t, "Approved", rows[1][6])
	assert.Equal(t, "5", rows[1][9])
	assert.Equal(t, "Pending", rows[2][6])
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "leave_requests_20240601_0905.xlsx", FileName(FormatXLSX, "20240601_0905"))
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
}

func TestRow_RequestedDateInLocalZone(t *testing.T) {
	requested := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)
	fromUTC := models.LeaveRequest{RequestedAt: requested}
	fromOtherZone := models.LeaveRequest{RequestedAt: requested.In(time.FixedZone("JST", 9*60*60))}

	assert.Equal(t, Row(fromUTC)[8], Row(fromOtherZone)[8])
	assert.Equal(t, requested.Local().Format("2006-01-02 15:04"), Row(fromUTC)[8])
}
