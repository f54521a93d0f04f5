package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"BazaarBot/entity"
)

func (m *MongoDB) UpsertCategory(category *entity.Category) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(categoriesCollection)
	filter := bson.D{{Key: "id", Value: category.ID}}
	update := bson.M{"$set": category}

	_, err = collection.UpdateOne(m.ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

func (m *MongoDB) GetCategory(id string) (*entity.Category, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(categoriesCollection)
	filter := bson.D{{Key: "id", Value: id}}

	var category entity.Category
	err = collection.FindOne(m.ctx, filter).Decode(&category)
	if err != nil {
		return nil, m.findError(err)
	}
	return &category, nil
}

func (m *MongoDB) ListCategories() ([]entity.Category, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(categoriesCollection)
	cursor, err := collection.Find(m.ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongodb find categories: %w", err)
	}
	defer cursor.Close(m.ctx)

	var categories []entity.Category
	if err = cursor.All(m.ctx, &categories); err != nil {
		return nil, fmt.Errorf("mongodb decode categories: %w", err)
	}
	return categories, nil
}
