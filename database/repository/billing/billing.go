package billingRepo

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

// BillingRepository defines methods for bill and invoice data access.
type BillingRepository interface {
	CreateBill(ctx context.Context, bill *models.Bill) error
	// GetBillByID retrieves a bill by its unique ID. A missing bill
	// yields (nil, nil), not an error.
	GetBillByID(ctx context.Context, id string) (*models.Bill, error)
	GetBillsByPatient(ctx context.Context, patientID string) ([]models.Bill, error)
	GetBillsByDoctor(ctx context.Context, doctorID string) ([]models.Bill, error)
	// MarkBillPaid flips a pending bill to paid and records the invoice ID.
	// It fails if the bill is already settled.
	MarkBillPaid(ctx context.Context, billID, invoiceID string) error
	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	CountBills(ctx context.Context, filter bson.M) (int64, error)
	// SumPaid returns the total amount collected across paid bills.
	SumPaid(ctx context.Context) (float64, error)
}

type mongoBillingRepo struct {
	bills    *mongo.Collection
	invoices *mongo.Collection
}

// NewMongoBillingRepo constructs a new MongoDB BillingRepository.
func NewMongoBillingRepo() BillingRepository {
	repo := &mongoBillingRepo{
		bills:    database.DB().Collection("bills"),
		invoices: database.DB().Collection("invoices"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create billing indexes: %v\n", err)
	}
	return repo
}

func (r *mongoBillingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	billIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("patient_status_idx"),
		},
	}
	if _, err := r.bills.Indexes().CreateMany(ctx, billIndexes); err != nil {
		return fmt.Errorf("failed to create bill indexes: %w", err)
	}

	invoiceIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "invoice_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_invoice_id"),
		},
	}
	if _, err := r.invoices.Indexes().CreateMany(ctx, invoiceIndexes); err != nil {
		return fmt.Errorf("failed to create invoice indexes: %w", err)
	}
	return nil
}

func (r *mongoBillingRepo) CreateBill(ctx context.Context, bill *models.Bill) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	if _, err := r.bills.InsertOne(ctx, bill); err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

func (r *mongoBillingRepo) GetBillByID(ctx context.Context, id string) (*models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bill models.Bill
	err := r.bills.FindOne(ctx, bson.M{"id": id}).Decode(&bill)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bill with id %s: %w", id, err)
	}
	return &bill, nil
}

func (r *mongoBillingRepo) GetBillsByPatient(ctx context.Context, patientID string) ([]models.Bill, error) {
	return r.findBills(ctx, bson.M{"patient_id": patientID})
}

func (r *mongoBillingRepo) GetBillsByDoctor(ctx context.Context, doctorID string) ([]models.Bill, error) {
	return r.findBills(ctx, bson.M{"doctor_id": doctorID})
}

func (r *mongoBillingRepo) findBills(ctx context.Context, filter bson.M) ([]models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.bills.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bills []models.Bill
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *mongoBillingRepo) MarkBillPaid(ctx context.Context, billID, invoiceID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": billID, "status": models.BillPending}
	update := bson.M{"$set": bson.M{
		"status":     models.BillPaid,
		"invoice_id": invoiceID,
		"updated_at": time.Now(),
	}}

	res, err := r.bills.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark bill %s as paid: %w", billID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("bill %s is not pending", billID)
	}
	return nil
}

func (r *mongoBillingRepo) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.invoices.InsertOne(ctx, inv); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *mongoBillingRepo) CountBills(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	return r.bills.CountDocuments(ctx, filter)
}

// SumPaid aggregates the collected revenue across paid bills.
func (r *mongoBillingRepo) SumPaid(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.BillPaid}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total"}}}},
	}
	cursor, err := r.bills.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
