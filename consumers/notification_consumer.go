package consumers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/buttcoder420/FinalYear-backend/mailer"
	"github.com/buttcoder420/FinalYear-backend/rabbitmq"
)

// StartNotificationConsumer drains shipped-order events and sends the
// shipping email. Delivery failures only nack the message and are logged;
// they never reach the request that triggered the event.
func StartNotificationConsumer(ch *amqp.Channel, queue string, sender mailer.Sender) error {
	msgs, err := ch.Consume(
		queue,
		"notification-consumer", // consumer tag
		false,                   // auto-ack
		false,                   // exclusive
		false,                   // no-local
		false,                   // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			processShippedEvent(msg, sender)
		}
	}()

	return nil
}

func processShippedEvent(msg amqp.Delivery, sender mailer.Sender) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in notification processing: %v", r)
		}
	}()

	var event rabbitmq.ShippedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Invalid notification message: %s", msg.Body)
		msg.Nack(false, false)
		return
	}

	subject := fmt.Sprintf("Your Order #%s Has Been Shipped!", event.OrderID)
	body := shippedEmailBody(event)
	if err := sender.Send(event.Email, subject, body); err != nil {
		log.Printf("Failed to send shipping notification for order %s: %v", event.OrderID, err)
		msg.Nack(false, false)
		return
	}

	log.Printf("Shipping notification sent to %s for order %s", event.Email, event.OrderID)
	msg.Ack(false)
}

func shippedEmailBody(event rabbitmq.ShippedEvent) string {
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	  <h2 style="color: #4CAF50;">Hello %s,</h2>
	  <p>Your order has been shipped and is on its way to you!</p>
	  <div style="background: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">
	    <h3 style="margin-top: 0;">Order Details</h3>
	    <p><strong>Order ID:</strong> %s</p>
	    <p><strong>Status:</strong> Shipped</p>
	    <p><strong>Date:</strong> %s</p>
	  </div>
	  <p>Go to the App and check your order live.</p>
	  <p style="margin-top: 30px;">Thank you for shopping with us!</p>
	  <p><strong>Customer Support Team</strong></p>
	</div>`,
		event.FirstName, event.OrderID, time.Now().Format("02/01/2006"))
}
