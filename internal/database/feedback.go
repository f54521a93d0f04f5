package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"BazaarBot/entity"
)

func (m *MongoDB) InsertFeedback(feedback *entity.Feedback) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(feedbackCollection)
	_, err = collection.InsertOne(m.ctx, feedback)
	if err != nil {
		return fmt.Errorf("mongodb insert feedback: %w", err)
	}
	return nil
}

func (m *MongoDB) FeedbackByProduct(productID string) ([]entity.Feedback, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(feedbackCollection)
	cursor, err := collection.Find(m.ctx, bson.M{"product_id": productID})
	if err != nil {
		return nil, fmt.Errorf("mongodb find feedback: %w", err)
	}
	defer cursor.Close(m.ctx)

	var items []entity.Feedback
	if err = cursor.All(m.ctx, &items); err != nil {
		return nil, fmt.Errorf("mongodb decode feedback: %w", err)
	}
	return items, nil
}
