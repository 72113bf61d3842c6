package patientRepo

import (
	"errors"
	"fmt"
	"time"

	"medicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetByID retrieves a patient document by ID.
func (r *MongoPatientRepo) GetByID(id string) (*models.Patient, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var patient models.Patient
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&patient)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient with id %s: %w", id, err)
	}
	return &patient, nil
}

// GetByEmail retrieves a patient document by email.
func (r *MongoPatientRepo) GetByEmail(email string) (*models.Patient, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var patient models.Patient
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&patient)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient with email %s: %w", email, err)
	}
	return &patient, nil
}

// GetAll retrieves all patient documents.
func (r *MongoPatientRepo) GetAll() ([]models.Patient, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("failed to decode patients: %w", err)
	}
	return patients, nil
}

// Create inserts a new patient document.
func (r *MongoPatientRepo) Create(patient *models.Patient) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, patient)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

// Update modifies an existing patient document.
func (r *MongoPatientRepo) Update(patient *models.Patient) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	patient.UpdatedAt = time.Now()
	filter := bson.M{"id": patient.ID}
	update := bson.M{"$set": patient}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update patient with id %s: %w", patient.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("patient with id %s not found", patient.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update by ID.
func (r *MongoPatientRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": updateDoc}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update patient with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("patient with id %s not found", id)
	}
	return nil
}

// Delete removes a patient document by its ID.
func (r *MongoPatientRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete patient with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("patient with id %s not found", id)
	}
	return nil
}

// Count returns the number of patient documents.
func (r *MongoPatientRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{})
}
