package repository

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"BazaarBot/entity"
)

func (m *MongoDB) UpsertDelivery(delivery *entity.Delivery) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	delivery.UpdatedAt = time.Now()

	collection := connection.Database(m.database).Collection(deliveriesCollection)
	filter := bson.D{{Key: "order_id", Value: delivery.OrderID}}
	update := bson.M{"$set": delivery}

	_, err = collection.UpdateOne(m.ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

func (m *MongoDB) GetDeliveryByOrder(orderID string) (*entity.Delivery, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(deliveriesCollection)
	filter := bson.D{{Key: "order_id", Value: orderID}}

	var delivery entity.Delivery
	err = collection.FindOne(m.ctx, filter).Decode(&delivery)
	if err != nil {
		return nil, m.findError(err)
	}
	return &delivery, nil
}
