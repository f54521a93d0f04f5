package repository

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"BazaarBot/entity"
)

func (m *MongoDB) UpsertUser(user entity.User) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	user.LastSeen = time.Now()

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "telegram_id", Value: user.TelegramId}}
	update := bson.M{"$set": user}

	_, err = collection.UpdateOne(m.ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

func (m *MongoDB) GetUserByTelegramId(telegramId int64) (*entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "telegram_id", Value: telegramId}}

	var user entity.User
	err = collection.FindOne(m.ctx, filter).Decode(&user)
	if err != nil {
		return nil, m.findError(err)
	}

	return &user, nil
}

func (m *MongoDB) GetUserByUUID(uuid string) (*entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "uuid", Value: uuid}}

	var user entity.User
	err = collection.FindOne(m.ctx, filter).Decode(&user)
	if err != nil {
		return nil, m.findError(err)
	}

	return &user, nil
}

// SetUserField writes a single profile field. Only whitelisted fields
// reach this point; the service layer maps edit targets to bson keys.
func (m *MongoDB) SetUserField(telegramId int64, field, value string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "telegram_id", Value: telegramId}}
	update := bson.M{"$set": bson.M{field: value, "last_seen": time.Now()}}

	result, err := collection.UpdateOne(m.ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongodb update error: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %d not found", telegramId)
	}
	return nil
}

func (m *MongoDB) SetUserBlocked(telegramId int64, blocked bool) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "telegram_id", Value: telegramId}}
	update := bson.M{"$set": bson.M{"blocked": blocked}}

	result, err := collection.UpdateOne(m.ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongodb update error: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %d not found", telegramId)
	}
	return nil
}

func (m *MongoDB) GetAdmins() ([]entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	cursor, err := collection.Find(m.ctx, bson.M{"is_admin": true})
	if err != nil {
		return nil, fmt.Errorf("mongodb find admins: %w", err)
	}
	defer cursor.Close(m.ctx)

	var admins []entity.User
	if err = cursor.All(m.ctx, &admins); err != nil {
		return nil, fmt.Errorf("mongodb decode admins: %w", err)
	}
	return admins, nil
}

func (m *MongoDB) CountUsers() (int64, error) {
	connection, err := m.connect()
	if err != nil {
		return 0, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	count, err := collection.CountDocuments(m.ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("mongodb count users: %w", err)
	}
	return count, nil
}

func (m *MongoDB) ListUsers() ([]entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	cursor, err := collection.Find(m.ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongodb find users: %w", err)
	}
	defer cursor.Close(m.ctx)

	var users []entity.User
	if err = cursor.All(m.ctx, &users); err != nil {
		return nil, fmt.Errorf("mongodb decode users: %w", err)
	}
	return users, nil
}
