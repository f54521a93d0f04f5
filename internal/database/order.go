package repository

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"BazaarBot/entity"
)

// NextOrderNumber returns a monotonically increasing order number from
// the counters collection. Upsert plus $inc keeps it race-free across
// concurrent checkouts.
func (m *MongoDB) NextOrderNumber() (int64, error) {
	connection, err := m.connect()
	if err != nil {
		return 0, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(countersCollection)
	filter := bson.D{{Key: "name", Value: "orders"}}
	update := bson.M{"$inc": bson.M{"value": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Value int64 `bson:"value"`
	}
	err = collection.FindOneAndUpdate(m.ctx, filter, update, opts).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("mongodb counter error: %w", err)
	}
	return counter.Value, nil
}

func (m *MongoDB) InsertOrder(order *entity.Order) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(ordersCollection)
	_, err = collection.InsertOne(m.ctx, order)
	if err != nil {
		return fmt.Errorf("mongodb insert order: %w", err)
	}
	return nil
}

func (m *MongoDB) GetOrder(id string) (*entity.Order, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(ordersCollection)
	filter := bson.D{{Key: "id", Value: id}}

	var order entity.Order
	err = collection.FindOne(m.ctx, filter).Decode(&order)
	if err != nil {
		return nil, m.findError(err)
	}
	return &order, nil
}

func (m *MongoDB) SetOrderStatus(id, status string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(ordersCollection)
	filter := bson.D{{Key: "id", Value: id}}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}

	result, err := collection.UpdateOne(m.ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongodb update order: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}

// SetOrderReceipt attaches the stored receipt file to an order and moves
// it to the paid status in the same write.
func (m *MongoDB) SetOrderReceipt(id, fileID, mimeType string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(ordersCollection)
	filter := bson.D{{Key: "id", Value: id}}
	update := bson.M{"$set": bson.M{
		"receipt_file_id":   fileID,
		"receipt_mime_type": mimeType,
		"status":            entity.OrderPaid,
		"updated_at":        time.Now(),
	}}

	result, err := collection.UpdateOne(m.ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongodb update order: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}

func (m *MongoDB) OrdersByUser(telegramId int64) ([]entity.Order, error) {
	return m.findOrders(bson.M{"telegram_id": telegramId})
}

func (m *MongoDB) OrdersByStatus(statuses ...string) ([]entity.Order, error) {
	return m.findOrders(bson.M{"status": bson.M{"$in": statuses}})
}

// OrdersSince returns orders created at or after the given time with one
// of the given statuses.
func (m *MongoDB) OrdersSince(since time.Time, statuses ...string) ([]entity.Order, error) {
	return m.findOrders(bson.M{
		"created_at": bson.M{"$gte": since},
		"status":     bson.M{"$in": statuses},
	})
}

func (m *MongoDB) findOrders(filter bson.M) ([]entity.Order, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(ordersCollection)
	cursor, err := collection.Find(m.ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("mongodb find orders: %w", err)
	}
	defer cursor.Close(m.ctx)

	var orders []entity.Order
	if err = cursor.All(m.ctx, &orders); err != nil {
		return nil, fmt.Errorf("mongodb decode orders: %w", err)
	}
	return orders, nil
}
