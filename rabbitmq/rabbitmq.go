package rabbitmq

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ShippedEvent is published when an order moves to shipped and a buyer email
// is on file. The consumer turns it into the shipping notification mail.
type ShippedEvent struct {
	OrderID   string    `json:"orderId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	Occurred  time.Time `json:"occurred"`
}

type RabbitMQ struct {
	Conn     *amqp.Connection
	Channel  *amqp.Channel
	Exchange string
	Queue    string
}

func New(url, exchange, queue string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{
		Conn:     conn,
		Channel:  ch,
		Exchange: exchange,
		Queue:    queue,
	}, nil
}

// SetupQueues declares the durable notification exchange and queue and binds
// them.
func (r *RabbitMQ) SetupQueues() error {
	if err := r.Channel.ExchangeDeclare(
		r.Exchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if _, err := r.Channel.QueueDeclare(
		r.Queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	return r.Channel.QueueBind(r.Queue, "", r.Exchange, false, nil)
}

// NotifyShipped publishes the shipped event. Satisfies the order service's
// notifier contract.
func (r *RabbitMQ) NotifyShipped(orderID, email, firstName string) error {
	body, err := json.Marshal(ShippedEvent{
		OrderID:   orderID,
		Email:     email,
		FirstName: firstName,
		Occurred:  time.Now(),
	})
	if err != nil {
		return err
	}

	return r.Channel.Publish(
		r.Exchange,
		"",
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			ContentType:  "application/json",
			Body:         body,
		},
	)
}

func (r *RabbitMQ) Close() {
	if r.Channel != nil {
		r.Channel.Close()
	}
	if r.Conn != nil {
		r.Conn.Close()
	}
}
