package sandbox

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/parse"
	"rental-admin-backend/internal/store"
)

// Seed fills an empty database with demo records. It does nothing when staff
// records already exist.
func Seed(ctx context.Context, r *store.Rentals) error {
	var n int64
	if err := r.DB().WithContext(ctx).Model(&model.StaffRecord{}).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to count staff: %w", err)
	}
	if n > 0 {
		log.Printf("Sandbox already holds %d staff records, skipping seed", n)
		return nil
	}

	base := time.Now().UTC().AddDate(0, -2, 0)
	day := func(offset int) string { return base.AddDate(0, 0, offset).Format(parse.DateLayout) }
	terminated := day(30)

	staff := []model.StaffRecord{
		{EmployeeID: "EMP-001", FirstName: "Maria", LastName: "Lopez", Email: "maria.lopez@example.com", JobTitle: "Branch Manager", Department: "Operations", BranchID: 1, Salary: 5200, EmploymentType: "full_time", HireDate: "2021-04-12"},
		{EmployeeID: "EMP-002", FirstName: "Tom", LastName: "Becker", Email: "tom.becker@example.com", JobTitle: "Rental Agent", Department: "Sales", BranchID: 1, Salary: 3100, EmploymentType: "full_time", HireDate: "2022-08-01"},
		{EmployeeID: "EMP-003", FirstName: "Aiko", LastName: "Tanaka", Email: "aiko.tanaka@example.com", JobTitle: "Mechanic", Department: "Fleet", BranchID: 2, Salary: 3600, EmploymentType: "full_time", HireDate: "2020-01-20"},
		{EmployeeID: "EMP-004", FirstName: "Sam", LastName: "Okafor", JobTitle: "Rental Agent", Department: "Sales", BranchID: 2, Salary: 1800, EmploymentType: "part_time", HireDate: "2023-05-15", TerminationDate: &terminated},
	}
	models := []model.CarModel{
		{Make: "Toyota", Model: "Corolla", Year: 2023, VehicleType: "Sedan", FuelType: "Hybrid", Transmission: "Automatic", SeatingCapacity: 5, Doors: 4, StandardDailyRate: 49, StandardFeatures: parse.EncodeFeatures([]string{"Bluetooth", "Backup Camera"}), IsActive: true},
		{Make: "Ford", Model: "Transit", Year: 2022, VehicleType: "Van", FuelType: "Diesel", Transmission: "Manual", SeatingCapacity: 9, Doors: 4, StandardDailyRate: 89.5, StandardFeatures: parse.EncodeFeatures([]string{"Cruise Control"}), IsActive: true},
		{Make: "Fiat", Model: "500", Year: 2018, VehicleType: "Compact", FuelType: "Petrol", Transmission: "Manual", SeatingCapacity: 4, Doors: 2, StandardDailyRate: 29, StandardFeatures: "[]", IsActive: false},
	}

	statuses := []model.BookingStatus{
		model.BookingCompleted, model.BookingActive, model.BookingConfirmed, model.BookingPending,
		model.BookingCancelled, model.BookingOverdue, model.BookingCompleted, model.BookingConfirmed,
	}
	names := []string{"Ana Silva", "John Carter", "Lea Meyer", "Omar Haddad", "Chen Wei", "Grace Kim", "Luis Ortega", "Nina Petrova"}
	var bookings []model.Booking
	for i, status := range statuses {
		calculated := model.Money(120 + 35*i)
		discount := model.Money(0)
		if i%3 == 0 {
			discount = 10
		}
		b := model.Booking{
			CustomerID:      int64(100 + i),
			CustomerName:    names[i],
			VehicleID:       int64(10 + i%4),
			PickupDate:      day(i * 5),
			ReturnDate:      day(i*5 + 3),
			BookingStatus:   status,
			CalculatedTotal: calculated,
			DiscountAmount:  discount,
			FinalTotal:      calculated - discount,
		}
		if status == model.BookingCancelled {
			b.CancelReason = "Customer request"
		}
		bookings = append(bookings, b)
	}

	save := func(rec any) error {
		switch v := rec.(type) {
		case *model.StaffRecord:
			return store.Create(ctx, r, v)
		case *model.CarModel:
			return store.Create(ctx, r, v)
		case *model.Booking:
			return store.Create(ctx, r, v)
		case *model.DamageReport:
			return store.Create(ctx, r, v)
		case *model.ServiceRecord:
			return store.Create(ctx, r, v)
		case *model.Payment:
			return store.Create(ctx, r, v)
		}
		return fmt.Errorf("unsupported seed record %T", rec)
	}

	var records []any
	for i := range staff {
		records = append(records, &staff[i])
	}
	for i := range models {
		records = append(records, &models[i])
	}
	for i := range bookings {
		records = append(records, &bookings[i])
	}
	for _, rec := range records {
		if err := save(rec); err != nil {
			return err
		}
	}

	resolved := day(20)
	next := day(180)
	var more []any
	more = append(more,
		&model.DamageReport{BookingID: bookings[0].BookingID, VehicleID: bookings[0].VehicleID, CustomerID: bookings[0].CustomerID, IncidentDescription: "Scratch on rear bumper", DamageCost: 180, Status: model.DamageClosed, DateRecorded: day(4), ResolvedDate: &resolved},
		&model.DamageReport{BookingID: bookings[1].BookingID, VehicleID: bookings[1].VehicleID, CustomerID: bookings[1].CustomerID, IncidentDescription: "Cracked windshield", DamageCost: 420, Status: model.DamageAssessed, DateRecorded: day(9)},
		&model.DamageReport{BookingID: bookings[5].BookingID, VehicleID: bookings[5].VehicleID, CustomerID: bookings[5].CustomerID, IncidentDescription: "Dent on driver door", DamageCost: 0, Status: model.DamageReported, DateRecorded: day(27)},
		&model.ServiceRecord{VehicleID: 10, ServiceType: "Oil Change", ServiceDate: day(2), NextServiceDate: &next, ServiceCost: 75, Status: model.ServiceCompleted, PerformedBy: "Aiko Tanaka"},
		&model.ServiceRecord{VehicleID: 11, ServiceType: "Brake Inspection", ServiceDate: day(40), ServiceCost: 120, Status: model.ServiceScheduled, PerformedBy: "Aiko Tanaka"},
		&model.ServiceRecord{VehicleID: 12, ServiceType: "Tire Rotation", ServiceDate: day(12), ServiceCost: 60, Status: model.ServiceOverdue},
	)
	for i, b := range bookings {
		if b.BookingStatus == model.BookingPending {
			continue
		}
		p := &model.Payment{
			BookingID:       b.BookingID,
			Amount:          b.FinalTotal,
			PaymentMethod:   []string{"credit_card", "debit_card", "cash"}[i%3],
			PaymentStatus:   model.PaymentCompleted,
			TransactionCode: "TXN-" + strings.ToUpper(uuid.NewString()[:8]),
			PaymentDate:     b.PickupDate,
		}
		if b.BookingStatus == model.BookingCancelled {
			p.RefundAmount = p.Amount
			p.PaymentStatus = model.PaymentRefunded
		}
		more = append(more, p)
	}
	for _, rec := range more {
		if err := save(rec); err != nil {
			return err
		}
	}

	log.Printf("Seeded sandbox with %d staff, %d car models, %d bookings", len(staff), len(models), len(bookings))
	return nil
}
