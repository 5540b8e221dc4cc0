// Package reports builds the per-driver parcel report and its spreadsheet export.
package reports

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/xelth-com/goodstrack/internal/models"
)

// ParcelSource lists the parcels registered by a driver
type ParcelSource interface {
	GetParcelsByDriver(ctx context.Context, driverID string) ([]models.Parcel, error)
}

// DriverReport is a driver's parcel history, newest first
type DriverReport struct {
	DriverID    string                      `json:"driverId"`
	Query       string                      `json:"query,omitempty"`
	GeneratedAt time.Time                   `json:"generatedAt"`
	Total       int                         `json:"total"`
	Counts      map[models.ParcelStatus]int `json:"counts"`
	Parcels     []models.Parcel             `json:"parcels"`
}

// Service assembles reports
type Service struct {
	parcels ParcelSource
	now     func() time.Time
}

// NewService creates a report service over a parcel source
func NewService(parcels ParcelSource) *Service {
	return &Service{parcels: parcels, now: time.Now}
}

// DriverReport lists the driver's parcels matching query. Status counts and
// Total cover all of the driver's parcels regardless of the query.
func (s *Service) DriverReport(ctx context.Context, driverID, query string) (*DriverReport, error) {
	all, err := s.parcels.GetParcelsByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	sorted := make([]models.Parcel, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	report := &DriverReport{
		DriverID:    driverID,
		Query:       strings.TrimSpace(query),
		GeneratedAt: s.now().UTC(),
		Total:       len(sorted),
		Counts: map[models.ParcelStatus]int{
			models.StatusRegistered: 0,
			models.StatusVerified:   0,
			models.StatusDelivered:  0,
		},
		Parcels: make([]models.Parcel, 0, len(sorted)),
	}
	for _, p := range sorted {
		report.Counts[p.Status]++
		if matches(p, report.Query) {
			report.Parcels = append(report.Parcels, p)
		}
	}
	return report, nil
}

// matches is a case-insensitive substring search over reference, party names and item names
func matches(p models.Parcel, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.ReferenceNumber), q) ||
		strings.Contains(strings.ToLower(p.Sender.Name), q) ||
		strings.Contains(strings.ToLower(p.Receiver.Name), q) {
		return true
	}
	for _, item := range p.Items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			return true
		}
	}
	return false
}
