package events

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitMQClient struct {
	conn          *amqp.Connection
	channel       *amqp.Channel
	connectionURI string
	exchange      string
	isConnected   bool
}

func NewRabbitMQClient(connectionURI, exchange string) (*RabbitMQClient, error) {
	client := &RabbitMQClient{
		connectionURI: connectionURI,
		exchange:      exchange,
	}
	if err := client.connect(); err != nil {
		return nil, err
	}
	if err := client.setupExchange(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func (c *RabbitMQClient) connect() error {
	var err error
	c.conn, err = amqp.Dial(c.connectionURI)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	c.channel, err = c.conn.Channel()
	if err != nil {
		c.conn.Close()
		return fmt.Errorf("failed to open a channel: %w", err)
	}
	c.isConnected = true

	go c.monitorConnection()
	return nil
}

func (c *RabbitMQClient) setupExchange() error {
	return c.channel.ExchangeDeclare(c.exchange, "topic", true, false, false, false, nil)
}

func (c *RabbitMQClient) monitorConnection() {
	connCloseChan := make(chan *amqp.Error)
	c.conn.NotifyClose(connCloseChan)

	if err := <-connCloseChan; err != nil {
		c.isConnected = false
		log.Printf("RabbitMQ connection closed: %v, attempting to reconnect...", err)
		c.reconnect()
	}
}

func (c *RabbitMQClient) reconnect() {
	backoff := 1 * time.Second
	maxBackoff := 30 * time.Second

	for {
		time.Sleep(backoff)

		if err := c.connect(); err == nil {
			if err := c.setupExchange(); err != nil {
				log.Printf("Failed to redeclare exchange after reconnection: %v", err)
				continue
			}
			log.Println("Successfully reconnected to RabbitMQ")
			return
		} else {
			log.Printf("Failed to reconnect to RabbitMQ: %v", err)
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (c *RabbitMQClient) Publish(ctx context.Context, routingKey string, body []byte) error {
	if !c.isConnected {
		return fmt.Errorf("not connected to RabbitMQ")
	}
	return c.channel.PublishWithContext(ctx, c.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
}

func (c *RabbitMQClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
