// Package export writes leave requests as flat tables for spreadsheets and
// reporting tools.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
	"github.com/yukikurage/leave-request-manager/internal/constants"
	"github.com/yukikurage/leave-request-manager/internal/models"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat maps a user-supplied value to a Format. Empty means CSV.
func ParseFormat(value string) (Format, error) {
	switch value {
	case "", "csv", "CSV":
		return FormatCSV, nil
	case "xlsx", "XLSX", "excel", "Excel":
		return FormatXLSX, nil
	}
	return "", ErrUnsupportedFormat
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Extension returns the file extension of the format, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// Header is the column row shared by every format.
var Header = []string{
	"ID",
	"Employee Name",
	"Start Date",
	"End Date",
	"Leave Type",
	"Reason",
	"Status",
	"Admin Comments",
	"Requested Date",
	"Total Days",
}

// SheetName is the worksheet that holds the table in spreadsheet exports.
const SheetName = "Leave Requests"

// Row renders a request as the string cells of one table row. The requested
// timestamp is shown in the server's local zone.
func Row(r models.LeaveRequest) []string {
	comments := ""
	if r.AdminComments != nil {
		comments = *r.AdminComments
	}
	return []string{
		strconv.FormatUint(r.ID, 10),
		r.EmployeeName,
		r.Start().Format(constants.DateLayout),
		r.End().Format(constants.DateLayout),
		r.LeaveType,
		r.Reason,
		string(r.Status),
		comments,
		r.RequestedAt.Local().Format(constants.TimestampLayout),
		strconv.Itoa(r.TotalDays()),
	}
}

// Write encodes requests in the given format.
func Write(w io.Writer, format Format, requests []models.LeaveRequest) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, requests)
	case FormatXLSX:
		return WriteXLSX(w, requests)
	}
	return ErrUnsupportedFormat
}

// WriteCSV writes an RFC 4180 table; fields containing commas, quotes or
// line breaks are quoted and embedded quotes doubled.
func WriteCSV(w io.Writer, requests []models.LeaveRequest) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range requests {
		if err := writer.Write(Row(r)); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", r.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes a single-sheet workbook with a styled header row and a
// status colour per row.
func WriteXLSX(w io.Writer, requests []models.LeaveRequest) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"ADD8E6"}, Pattern: 1},
		Border:    []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	statusStyles := map[models.LeaveStatus]excelize.Style{
		models.LeaveStatusApproved: {Font: &excelize.Font{Color: "006400"}, Fill: excelize.Fill{Type: "pattern", Color: []string{"90EE90"}, Pattern: 1}},
		models.LeaveStatusDenied:   {Font: &excelize.Font{Color: "8B0000"}, Fill: excelize.Fill{Type: "pattern", Color: []string{"FFB6C1"}, Pattern: 1}},
		models.LeaveStatusPending:  {Font: &excelize.Font{Color: "FF8C00"}, Fill: excelize.Fill{Type: "pattern", Color: []string{"FFFFE0"}, Pattern: 1}},
	}
	statusStyleIDs := make(map[models.LeaveStatus]int, len(statusStyles))
	for status, style := range statusStyles {
		id, err := f.NewStyle(&style)
		if err != nil {
			return fmt.Errorf("failed to create %s style: %w", status, err)
		}
		statusStyleIDs[status] = id
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(Header))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range requests {
		rowNum := i + 2
		cells := Row(r)
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		// numeric columns stay numeric in the sheet
		row[0] = r.ID
		row[len(row)-1] = r.TotalDays()

		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r.ID, err)
		}

		if styleID, ok := statusStyleIDs[r.Status]; ok {
			statusCell, _ := excelize.CoordinatesToCellName(7, rowNum)
			if err := f.SetCellStyle(SheetName, statusCell, statusCell, styleID); err != nil {
				return fmt.Errorf("failed to style row %d: %w", r.ID, err)
			}
		}
	}

	if err := f.SetColWidth(SheetName, "A", lastCol, 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// FileName builds a download name such as leave_requests_20240601_1504.csv.
func FileName(format Format, stamp string) string {
	return "leave_requests_" + stamp + "." + format.Extension()
}
