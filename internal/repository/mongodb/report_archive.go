package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-backoffice/internal/model"
)

// ReportArchive stores one document per generated daily summary.
type ReportArchive interface {
	SaveDailySummary(ctx context.Context, day string, summary model.SalesSummary) error
}

type dailySummaryDocument struct {
	Day                  string    `bson:"day"`
	TotalTransactions    int64     `bson:"total_transactions"`
	TotalRevenue         string    `bson:"total_revenue"`
	TodayTransactions    int64     `bson:"today_transactions"`
	TodayRevenue         string    `bson:"today_revenue"`
	WeekTransactions     int64     `bson:"week_transactions"`
	WeekRevenue          string    `bson:"week_revenue"`
	LowStockProducts     int64     `bson:"low_stock_products"`
	TotalProducts        int64     `bson:"total_products"`
	ActiveSalesPersonnel int64     `bson:"active_sales_personnel"`
	CurrencyCode         string    `bson:"currency_code"`
	GeneratedAt          time.Time `bson:"generated_at"`
}

func newDailySummaryDocument(day string, s model.SalesSummary) dailySummaryDocument {
	return dailySummaryDocument{
		Day:                  day,
		TotalTransactions:    s.TotalTransactions,
		TotalRevenue:         s.TotalRevenue.StringFixed(2),
		TodayTransactions:    s.TodayTransactions,
		TodayRevenue:         s.TodayRevenue.StringFixed(2),
		WeekTransactions:     s.WeekTransactions,
		WeekRevenue:          s.WeekRevenue.StringFixed(2),
		LowStockProducts:     s.LowStockProducts,
		TotalProducts:        s.TotalProducts,
		ActiveSalesPersonnel: s.ActiveSalesPersonnel,
		CurrencyCode:         s.CurrencyCode,
		GeneratedAt:          s.GeneratedAt,
	}
}

// MongoReportArchive implements ReportArchive on a MongoDB collection.
type MongoReportArchive struct {
	client   *mongo.Client
	dbName   string
	collName string
}

func NewMongoReportArchive(ctx context.Context, uri string, dbName string) (*MongoReportArchive, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoReportArchive{
		client:   client,
		dbName:   dbName,
		collName: "daily_summaries",
	}, nil
}

// SaveDailySummary upserts by day so a re-run replaces that day's document.
func (r *MongoReportArchive) SaveDailySummary(ctx context.Context, day string, summary model.SalesSummary) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	_, err := collection.ReplaceOne(ctx,
		bson.M{"day": day},
		newDailySummaryDocument(day, summary),
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save daily summary %s: %w", day, err)
	}
	return nil
}

func (r *MongoReportArchive) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
