package repository

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"BazaarBot/entity"
)

func (m *MongoDB) UpsertProduct(product *entity.Product) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	product.UpdatedAt = time.Now()

	collection := connection.Database(m.database).Collection(productsCollection)
	filter := bson.D{{Key: "id", Value: product.ID}}
	update := bson.M{"$set": product}

	_, err = collection.UpdateOne(m.ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

func (m *MongoDB) GetProduct(id string) (*entity.Product, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(productsCollection)
	filter := bson.D{{Key: "id", Value: id}}

	var product entity.Product
	err = collection.FindOne(m.ctx, filter).Decode(&product)
	if err != nil {
		return nil, m.findError(err)
	}
	return &product, nil
}

func (m *MongoDB) ListProducts(activeOnly bool) ([]entity.Product, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	return m.findProducts(filter)
}

func (m *MongoDB) ListProductsByCategory(categoryID string, activeOnly bool) ([]entity.Product, error) {
	filter := bson.M{"category_id": categoryID}
	if activeOnly {
		filter["active"] = true
	}
	return m.findProducts(filter)
}

func (m *MongoDB) findProducts(filter bson.M) ([]entity.Product, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(productsCollection)
	cursor, err := collection.Find(m.ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongodb find products: %w", err)
	}
	defer cursor.Close(m.ctx)

	var products []entity.Product
	if err = cursor.All(m.ctx, &products); err != nil {
		return nil, fmt.Errorf("mongodb decode products: %w", err)
	}
	return products, nil
}

// DecrementStock atomically reserves quantity units of a product. The
// filter requires enough stock, so a concurrent checkout cannot drive
// stock negative; MatchedCount == 0 means the reservation lost.
func (m *MongoDB) DecrementStock(productID string, quantity int) (bool, error) {
	connection, err := m.connect()
	if err != nil {
		return false, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(productsCollection)
	filter := bson.M{"id": productID, "stock": bson.M{"$gte": quantity}}
	update := bson.M{
		"$inc": bson.M{"stock": -quantity},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := collection.UpdateOne(m.ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("mongodb update error: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// IncrementStock returns previously reserved units to a product.
func (m *MongoDB) IncrementStock(productID string, quantity int) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(productsCollection)
	filter := bson.M{"id": productID}
	update := bson.M{
		"$inc": bson.M{"stock": quantity},
		"$set": bson.M{"updated_at": time.Now()},
	}

	_, err = collection.UpdateOne(m.ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongodb update error: %w", err)
	}
	return nil
}
