package rabbitmq

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// Client represents a RabbitMQ client.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Channel returns the underlying AMQP channel.
func (r *Client) Channel() *amqp.Channel {
	return r.channel
}

// Close closes the channel and connection for graceful shutdown.
func (r *Client) Close() error {
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			return err
		}
	}
	if r.conn != nil {
		return r.conn.Close()
	}

	return nil
}

// MustNewClient creates a new RabbitMQ client and declares the order
// events exchange.
func MustNewClient() *Client {
	connStr := fmt.Sprintf(
		"amqp://%s:%s@%s:%d/",
		viper.GetString("rabbitmq.user"),
		viper.GetString("rabbitmq.password"),
		viper.GetString("rabbitmq.host"),
		viper.GetInt("rabbitmq.port"),
	)

	conn, err := amqp.Dial(connStr)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to RabbitMQ: %v", err))
	}

	channel, err := conn.Channel()
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			panic(fmt.Sprintf("failed to close a connection: %v", closeErr))
		}
		panic(fmt.Sprintf("failed to open a channel: %v", err))
	}

	exchange := viper.GetString("rabbitmq.orders.exchange")
	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		panic(fmt.Sprintf("failed to declare exchange %s: %v", exchange, err))
	}

	slog.Info("RabbitMQ connected", "host", viper.GetString("rabbitmq.host"), "exchange", exchange)

	return &Client{
		conn:    conn,
		channel: channel,
	}
}
