package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/autoshop/garage-booking/internal/domain"
)

// SheetName имя листа с расписанием
const SheetName = "Schedule"

// Columns заголовки колонок выгрузки
var Columns = []string{"Date", "Time", "Ends", "Service", "Customer", "Phone", "Vehicle", "Status", "Reference"}

// ServiceNamer возвращает отображаемое название услуги по ключу
type ServiceNamer interface {
	Get(key string) (domain.Service, error)
}

// ScheduleWriter выгружает записи в XLSX для мастерской
type ScheduleWriter struct {
	services ServiceNamer
}

// NewScheduleWriter создает writer; services может быть nil, тогда выводится ключ услуги
func NewScheduleWriter(services ServiceNamer) *ScheduleWriter {
	return &ScheduleWriter{services: services}
}

// Write пишет книгу с одним листом: заголовок и по строке на запись, в исходном порядке
func (s *ScheduleWriter) Write(w io.Writer, appointments []*domain.Appointment) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, col := range Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCell, _ := excelize.CoordinatesToCellName(len(Columns), 1)
		_ = f.SetCellStyle(SheetName, "A1", lastCell, style)
	}

	for i, a := range appointments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := s.row(a)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "I", 16); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (s *ScheduleWriter) row(a *domain.Appointment) []interface{} {
	return []interface{}{
		a.PreferredDate.Format(domain.DateFormat),
		a.PreferredTime.Display(),
		endDisplay(a),
		s.serviceName(a.Service),
		a.CustomerName,
		a.CustomerPhone,
		vehicle(a),
		string(a.Status),
		a.Reference,
	}
}

func (s *ScheduleWriter) serviceName(key string) string {
	if s.services == nil {
		return key
	}
	svc, err := s.services.Get(key)
	if err != nil {
		return key
	}
	return svc.Name
}

func endDisplay(a *domain.Appointment) string {
	end := a.EndTime()
	if end.IsZero() {
		return ""
	}
	return end.Display()
}

// vehicle "2018 Toyota Camry"; пустые части пропускаются
func vehicle(a *domain.Appointment) string {
	parts := make([]string, 0, 3)
	if a.VehicleYear != nil {
		parts = append(parts, strconv.Itoa(*a.VehicleYear))
	}
	if a.VehicleMake != nil && *a.VehicleMake != "" {
		parts = append(parts, *a.VehicleMake)
	}
	if a.VehicleModel != nil && *a.VehicleModel != "" {
		parts = append(parts, *a.VehicleModel)
	}
	return strings.Join(parts, " ")
}
