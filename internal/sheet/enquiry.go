// Package sheet records rental enquiries in a local xlsx workbook, one
// row per enquiry with a header row written on first use.
package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Raps_Enquiries"

var headerRow = []string{
	"First Name", "Last Name", "Email", "Phone",
	"Rental Duration", "Delivery Date", "Membership Status",
	"Interest In Membership", "Location", "How Heard",
	"Additional Comments", "Timestamp",
}

// Enquiry is a pre-booking interest form submitted from the website.
type Enquiry struct {
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	RentalDuration       string `json:"rentalDuration"`
	DeliveryDate         string `json:"deliveryDate"`
	MembershipStatus     string `json:"membershipStatus"`
	InterestInMembership string `json:"interestInMembership"`
	Location             string `json:"location"`
	HowHeard             string `json:"howHeard"`
	AdditionalComments   string `json:"additionalComments"`
}

// Book appends enquiries to a single workbook file. Writes are
// serialized with a mutex; excelize rewrites the whole file on save, so
// concurrent saves would clobber each other.
type Book struct {
	mu   sync.Mutex
	path string
}

func NewBook(path string) *Book { return &Book{path: path} }

// Append adds one enquiry row, creating the workbook and header row
// when the file does not exist yet. The timestamp column is filled
// server-side.
func (b *Book) Append(e Enquiry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, fresh, err := b.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if fresh {
		for i, h := range headerRow {
			cell, err := excelize.CoordinatesToCellName(i+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, h); err != nil {
				return err
			}
		}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("read sheet: %w", err)
	}
	next := len(rows) + 1

	values := []string{
		e.FirstName, e.LastName, e.Email, e.Phone,
		e.RentalDuration, e.DeliveryDate, e.MembershipStatus,
		e.InterestInMembership, e.Location, e.HowHeard,
		e.AdditionalComments,
		time.Now().Format("02/01/2006, 15:04:05"),
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, next)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("create sheet directory: %w", err)
	}
	if err := f.SaveAs(b.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// open returns the workbook, creating a fresh one with the enquiry
// sheet when the file does not exist.
func (b *Book) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(b.path); os.IsNotExist(err) {
		f := excelize.NewFile()
		idx, err := f.NewSheet(sheetName)
		if err != nil {
			return nil, false, err
		}
		f.SetActiveSheet(idx)
		_ = f.DeleteSheet("Sheet1")
		return f, true, nil
	}
	f, err := excelize.OpenFile(b.path)
	if err != nil {
		return nil, false, fmt.Errorf("open workbook: %w", err)
	}
	return f, false, nil
}
