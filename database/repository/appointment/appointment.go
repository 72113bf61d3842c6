package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medicore/database"
	"medicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	// GetByID retrieves an appointment by its unique ID. A missing
	// appointment yields (nil, nil), not an error.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	GetByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	GetByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Count(ctx context.Context, filter bson.M) (int64, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create appointment indexes: %v\n", err)
	}
	return repo
}

func (r *mongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("patient_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "doctor_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("doctor_date_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}

func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) GetByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"patient_id": patientID})
}

func (r *mongoAppointmentRepo) GetByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"doctor_id": doctorID})
}

func (r *mongoAppointmentRepo) GetByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"doctor_id": doctorID, "date": date})
}

func (r *mongoAppointmentRepo) find(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAppointmentRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	return r.coll.CountDocuments(ctx, filter)
}
