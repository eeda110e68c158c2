package rabbitmq

const (
	// NotificationsExchange direct-exchange для всех уведомлений.
	NotificationsExchange = "notifications"
	// ContractExpiringQueue очередь писем об окончании контракта.
	ContractExpiringQueue = "notifications.contract_expiring"
	// ContractExpiringKey ключ маршрутизации уведомлений об окончании контракта.
	ContractExpiringKey = "contract.expiring"

	prefetchCount = 10
)

// QueueConfig очередь и её ключ привязки к NotificationsExchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues очереди, которые объявляют и планировщик, и отправщик.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: ContractExpiringQueue, RoutingKey: ContractExpiringKey},
	}
}
