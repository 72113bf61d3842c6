package prescriptionRepo

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

// PrescriptionRepository defines methods for prescription data access.
type PrescriptionRepository interface {
	Create(ctx context.Context, p *models.Prescription) error
	// GetByID retrieves a prescription by its unique ID. A missing
	// prescription yields (nil, nil), not an error.
	GetByID(ctx context.Context, id string) (*models.Prescription, error)
	GetByPatient(ctx context.Context, patientID string) ([]models.Prescription, error)
	GetByDoctor(ctx context.Context, doctorID string) ([]models.Prescription, error)
	// GetByAppointment retrieves the prescription issued for an
	// appointment, or (nil, nil) when none has been issued yet.
	GetByAppointment(ctx context.Context, appointmentID string) (*models.Prescription, error)
}

type mongoPrescriptionRepo struct {
	coll *mongo.Collection
}

// NewMongoPrescriptionRepo constructs a new MongoDB PrescriptionRepository.
func NewMongoPrescriptionRepo() PrescriptionRepository {
	repo := &mongoPrescriptionRepo{
		coll: database.DB().Collection("prescriptions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create prescription indexes: %v\n", err)
	}
	return repo
}

func (r *mongoPrescriptionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}},
			Options: options.Index().SetName("patient_idx"),
		},
		{
			Keys:    bson.D{{Key: "appointment_id", Value: 1}},
			Options: options.Index().SetName("appointment_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create prescription indexes: %w", err)
	}
	return nil
}

func (r *mongoPrescriptionRepo) Create(ctx context.Context, p *models.Prescription) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *mongoPrescriptionRepo) GetByID(ctx context.Context, id string) (*models.Prescription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Prescription
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prescription with id %s: %w", id, err)
	}
	return &p, nil
}

func (r *mongoPrescriptionRepo) GetByPatient(ctx context.Context, patientID string) ([]models.Prescription, error) {
	return r.find(ctx, bson.M{"patient_id": patientID})
}

func (r *mongoPrescriptionRepo) GetByDoctor(ctx context.Context, doctorID string) ([]models.Prescription, error) {
	return r.find(ctx, bson.M{"doctor_id": doctorID})
}

func (r *mongoPrescriptionRepo) GetByAppointment(ctx context.Context, appointmentID string) (*models.Prescription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Prescription
	err := r.coll.FindOne(ctx, bson.M{"appointment_id": appointmentID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prescription for appointment %s: %w", appointmentID, err)
	}
	return &p, nil
}

func (r *mongoPrescriptionRepo) find(ctx context.Context, filter bson.M) ([]models.Prescription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prescriptions []models.Prescription
	if err := cursor.All(ctx, &prescriptions); err != nil {
		return nil, err
	}
	return prescriptions, nil
}
