package attendance

import (
	"fmt"
	"time"

	"personel-backend/internal/database"
	"personel-backend/internal/models"
)

// Timesheet: Bir personelin aylık puantaj özeti. Kalıcı tablo değil,
// kayıtlardan her seferinde hesaplanır; bordro üretimi bu özeti kullanır.
type Timesheet struct {
	EmployeeID  uint `json:"employee_id"`
	Year        int  `json:"year"`
	Month       int  `json:"month"`
	WorkingDays int  `json:"working_days"` // Hafta sonu ve tatil hariç gün sayısı
	WorkedDays  int  `json:"worked_days"`
	LateDays    int  `json:"late_days"`
	PaidLeave   int  `json:"paid_leave"`
	UnpaidLeave int  `json:"unpaid_leave"`
	AbsentDays  int  `json:"absent_days"`

	OvertimeMinutes int `json:"overtime_minutes"` // 8 saati aşan çalışma (dakika)
}

const workdayMinutes = 8 * 60

// dayRecord: Gün bazında ilk giriş / son çıkış.
type dayRecord struct {
	firstIn time.Time
	lastOut *time.Time
}

// ComputeTimesheet: Personel + dönem için puantaj hesaplar.
// workdayStart "08:30" formatında mesai başlangıcıdır; ilk giriş bu saatten
// sonraysa gün geç sayılır. Hafta sonları ve tatil günleri çalışma günü değildir.
func ComputeTimesheet(employeeID uint, year, month int, workdayStart string) (*Timesheet, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("geçersiz ay: %d", month)
	}

	startHour, startMin, err := parseWorkdayStart(workdayStart)
	if err != nil {
		return nil, err
	}

	var emp models.Employee
	if err := database.DB.First(&emp, "id = ?", employeeID).Error; err != nil {
		return nil, fmt.Errorf("personel bulunamadı: %w", err)
	}

	loc := time.Now().Location()
	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	nextMonth := firstDay.AddDate(0, 1, 0)

	// Tatiller
	var holidays []models.Holiday
	if err := database.DB.Where("date >= ? AND date < ?", firstDay, nextMonth).
		Find(&holidays).Error; err != nil {
		return nil, fmt.Errorf("tatiller sorgulanamadı: %w", err)
	}
	holidayDays := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidayDays[h.Date.Format("2006-01-02")] = true
	}

	// Yoklama kayıtları: gün başına ilk giriş / son çıkış
	var records []models.AttendanceRecord
	if err := database.DB.
		Where("employee_id = ? AND date >= ? AND date < ?", employeeID, firstDay, nextMonth).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("yoklama kayıtları sorgulanamadı: %w", err)
	}
	byDay := make(map[string]*dayRecord)
	for _, r := range records {
		key := r.Date.Format("2006-01-02")
		dr, ok := byDay[key]
		if !ok {
			dr = &dayRecord{firstIn: r.CheckIn, lastOut: r.CheckOut}
			byDay[key] = dr
			continue
		}
		if r.CheckIn.Before(dr.firstIn) {
			dr.firstIn = r.CheckIn
		}
		if r.CheckOut != nil && (dr.lastOut == nil || r.CheckOut.After(*dr.lastOut)) {
			dr.lastOut = r.CheckOut
		}
	}

	// Onaylı izinler
	var leaves []models.LeaveRequest
	if err := database.DB.
		Where("employee_id = ? AND status = ? AND start_date < ? AND end_date >= ?",
			employeeID, models.LeaveApproved, nextMonth, firstDay).
		Find(&leaves).Error; err != nil {
		return nil, fmt.Errorf("izinler sorgulanamadı: %w", err)
	}

	ts := &Timesheet{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
	}

	for day := firstDay; day.Before(nextMonth); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")

		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if holidayDays[key] {
			continue
		}

		ts.WorkingDays++

		if leaveType, onLeave := leaveTypeForDay(leaves, day); onLeave {
			if leaveType == models.LeaveUnpaid {
				ts.UnpaidLeave++
			} else {
				// Yıllık ve raporlu izinler ücretlidir
				ts.PaidLeave++
			}
			continue
		}

		dr, present := byDay[key]
		if !present {
			ts.AbsentDays++
			continue
		}

		ts.WorkedDays++

		shiftStart := time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, dr.firstIn.Location())
		if dr.firstIn.After(shiftStart) {
			ts.LateDays++
		}

		if dr.lastOut != nil {
			worked := int(dr.lastOut.Sub(dr.firstIn).Minutes())
			if worked > workdayMinutes {
				ts.OvertimeMinutes += worked - workdayMinutes
			}
		}
	}

	return ts, nil
}

func leaveTypeForDay(leaves []models.LeaveRequest, day time.Time) (models.LeaveType, bool) {
	for _, l := range leaves {
		if !day.Before(l.StartDate) && !day.After(l.EndDate) {
			return l.Type, true
		}
	}
	return "", false
}

func parseWorkdayStart(s string) (hour, min int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("mesai başlangıcı ayrıştırılamadı (%q): %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}
