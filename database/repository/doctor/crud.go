package doctorRepo

import (
	"errors"
	"fmt"
	"time"

	"medicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetByID retrieves a doctor document by ID.
func (r *MongoDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doctor models.Doctor
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doctor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor with id %s: %w", id, err)
	}
	return &doctor, nil
}

// GetByEmail retrieves a doctor document by email.
func (r *MongoDoctorRepo) GetByEmail(email string) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doctor models.Doctor
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doctor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor with email %s: %w", email, err)
	}
	return &doctor, nil
}

// GetAll retrieves all doctor documents.
func (r *MongoDoctorRepo) GetAll() ([]models.Doctor, error) {
	return r.find(bson.M{})
}

// GetApproved retrieves approved doctors, optionally filtered by specialization.
func (r *MongoDoctorRepo) GetApproved(specialization string) ([]models.Doctor, error) {
	filter := bson.M{"approved": true}
	if specialization != "" {
		filter["specialization"] = specialization
	}
	return r.find(filter)
}

func (r *MongoDoctorRepo) find(filter bson.M) ([]models.Doctor, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}

// Create inserts a new doctor document.
func (r *MongoDoctorRepo) Create(doctor *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, doctor)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

// Update modifies an existing doctor document.
func (r *MongoDoctorRepo) Update(doctor *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	doctor.UpdatedAt = time.Now()
	filter := bson.M{"id": doctor.ID}
	update := bson.M{"$set": doctor}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update doctor with id %s: %w", doctor.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", doctor.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update by ID.
func (r *MongoDoctorRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": updateDoc}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update doctor with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", id)
	}
	return nil
}

// Delete removes a doctor document by its ID.
func (r *MongoDoctorRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete doctor with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", id)
	}
	return nil
}

// Count returns the number of doctor documents matching the filter.
func (r *MongoDoctorRepo) Count(filter bson.M) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	return r.coll.CountDocuments(ctx, filter)
}
