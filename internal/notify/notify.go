package notify

import (
	"context"
	"fmt"

	"github.com/vkozyr/busterminal/internal/kafka"
)

// Sender delivers passenger-facing notices for ticket lifecycle events.
// Delivery is a stub; the terminal hands printed notices to the desk.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.TicketEvent) error {
	if event.PassengerEmail == "" {
		return nil
	}
	fmt.Printf("notify %s: %s for flight %d seat %s\n",
		event.PassengerEmail, event.Type, event.FlightID, event.SeatNumber)
	return nil
}
