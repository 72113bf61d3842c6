// File: database/repository/timeslot/interface.go
package timeslotRepo

import (
	"context"
	"fmt"

	"medicore/database"
	"medicore/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type TimeSlotRepository interface {
	CreateMany(ctx context.Context, slots []models.TimeSlot) ([]string, error)
	DeleteAllByDoctor(ctx context.Context, doctorID string) (int64, error)
	DeleteByID(ctx context.Context, doctorID, slotID string) error
	GetByDoctor(ctx context.Context, doctorID string) ([]models.TimeSlot, error)
	GetByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.TimeSlot, error)
	// GetByID retrieves one of the doctor's slots by its unique ID. A
	// missing slot yields (nil, nil), not an error.
	GetByID(ctx context.Context, doctorID, slotID string) (*models.TimeSlot, error)
	// IncrementBooked atomically claims one unit of slot capacity; it fails
	// when the slot is full, unavailable or missing.
	IncrementBooked(ctx context.Context, doctorID, slotID string) error
	// DecrementBooked releases one previously claimed unit.
	DecrementBooked(ctx context.Context, doctorID, slotID string) error
}

type mongoTimeSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeSlotRepo constructs a new MongoDB TimeSlotRepository.
func NewMongoTimeSlotRepo() TimeSlotRepository {
	repo := &mongoTimeSlotRepo{
		coll: database.DB().Collection("timeslots"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		fmt.Printf("failed to create timeslot indexes: %v\n", err)
	}
	return repo
}
