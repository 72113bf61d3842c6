// File: database/repository/timeslot/crud.go
package timeslotRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medicore/models"
)

func (r *mongoTimeSlotRepo) CreateMany(ctx context.Context, slots []models.TimeSlot) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, len(slots))
	for i, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		slot.CreatedAt = now
		docs[i] = slot
	}

	res, err := r.coll.InsertMany(ctx, docs, &options.InsertManyOptions{Ordered: boolPtr(true)})
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(res.InsertedIDs))
	for i, raw := range res.InsertedIDs {
		switch v := raw.(type) {
		case string:
			ids[i] = v
		case uuid.UUID:
			ids[i] = v.String()
		case primitive.ObjectID:
			ids[i] = v.Hex()
		default:
			return nil, errors.New("unexpected type for inserted ID")
		}
	}
	return ids, nil
}

// DeleteAllByDoctor removes every slot belonging to a doctor and returns the
// number of deleted documents. Slot regeneration is destructive-and-replace,
// so this runs before any insert.
func (r *mongoTimeSlotRepo) DeleteAllByDoctor(ctx context.Context, doctorID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"doctorId": doctorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoTimeSlotRepo) DeleteByID(ctx context.Context, doctorID, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "doctorId": doctorID}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoTimeSlotRepo) GetByDoctor(ctx context.Context, doctorID string) ([]models.TimeSlot, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID})
}

func (r *mongoTimeSlotRepo) GetByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.TimeSlot, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID, "date": date})
}

func (r *mongoTimeSlotRepo) find(ctx context.Context, filter bson.M) ([]models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []models.TimeSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *mongoTimeSlotRepo) GetByID(ctx context.Context, doctorID, slotID string) (*models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"doctorId": doctorID, "id": slotID}
	var slot models.TimeSlot
	err := r.coll.FindOne(ctx, filter).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// IncrementBooked claims one unit of capacity with a guarded update: the
// filter only matches while booked_count is below max_appointments, so two
// concurrent bookings cannot both claim the last unit.
func (r *mongoTimeSlotRepo) IncrementBooked(ctx context.Context, doctorID, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctorId":     doctorID,
		"id":           slotID,
		"is_available": true,
		"$expr":        bson.M{"$lt": bson.A{"$booked_count", "$max_appointments"}},
	}
	update := bson.M{"$inc": bson.M{"booked_count": 1}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSlotUnavailable
	}
	return nil
}

// DecrementBooked releases one previously claimed unit, never going below zero.
func (r *mongoTimeSlotRepo) DecrementBooked(ctx context.Context, doctorID, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctorId":     doctorID,
		"id":           slotID,
		"booked_count": bson.M{"$gt": 0},
	}
	update := bson.M{"$inc": bson.M{"booked_count": -1}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ErrSlotUnavailable is returned when a slot is full, blocked or missing.
var ErrSlotUnavailable = errors.New("time slot is not available for booking")

func boolPtr(b bool) *bool { return &b }
