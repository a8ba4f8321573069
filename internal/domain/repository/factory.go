package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Agents() AgentRepository
	Orders() OrderRepository
	Payments() PaymentRepository
}
