package repository

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"BazaarBot/entity"
)

func (m *MongoDB) UpsertCart(cart *entity.Cart) (*entity.Cart, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	cart.UpdatedAt = time.Now()

	collection := connection.Database(m.database).Collection(cartsCollection)
	filter := bson.D{{Key: "telegram_id", Value: cart.TelegramId}}
	update := bson.M{"$set": cart}

	_, err = collection.UpdateOne(m.ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("mongodb upsert error: %w", err)
	}
	return cart, nil
}

func (m *MongoDB) GetCart(telegramId int64) (*entity.Cart, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	filter := bson.D{{Key: "telegram_id", Value: telegramId}}
	collection := connection.Database(m.database).Collection(cartsCollection)
	result := collection.FindOne(m.ctx, filter)
	if result.Err() != nil {
		return nil, m.findError(result.Err())
	}
	cart := &entity.Cart{}
	err = result.Decode(cart)
	if err != nil {
		return nil, fmt.Errorf("mongodb decode error: %w", err)
	}
	return cart, nil
}

func (m *MongoDB) DeleteCart(telegramId int64) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(cartsCollection)
	_, err = collection.DeleteOne(m.ctx, bson.D{{Key: "telegram_id", Value: telegramId}})
	if err != nil {
		return fmt.Errorf("mongodb delete error: %w", err)
	}
	return nil
}
