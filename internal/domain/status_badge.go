package domain

// StatusBadge is the fixed icon/label/color triple a status renders as.
type StatusBadge struct {
	Icon  string
	Label string
	Color string
}

var orderBadges = map[OrderStatus]StatusBadge{
	OrderStatusPending:    {Icon: "clock", Label: "Pending", Color: "yellow"},
	OrderStatusProcessing: {Icon: "package", Label: "Processing", Color: "blue"},
	OrderStatusShipped:    {Icon: "truck", Label: "Shipped", Color: "purple"},
	OrderStatusDelivered:  {Icon: "check-circle", Label: "Delivered", Color: "green"},
}

// Badge maps a fulfillment status to its display badge. Unrecognized values
// fall back to a gray package badge rather than failing.
func (s OrderStatus) Badge() StatusBadge {
	if b, ok := orderBadges[s]; ok {
		return b
	}
	return StatusBadge{Icon: "package", Label: string(s), Color: "gray"}
}

// Badge maps a payment status to its display badge.
func (s PaymentStatus) Badge() StatusBadge {
	if s == PaymentStatusCompleted {
		return StatusBadge{Icon: "check-circle", Label: "Paid", Color: "green"}
	}
	return StatusBadge{Icon: "clock", Label: "Payment Pending", Color: "yellow"}
}
