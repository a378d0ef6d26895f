package enums

type ENotificatorKind string

const (
	NOTIFICATOR_WEBHOOK  ENotificatorKind = "webhook"
	NOTIFICATOR_TELEGRAM ENotificatorKind = "telegram"
	NOTIFICATOR_DISCORD  ENotificatorKind = "discord"
	NOTIFICATOR_EMAIL    ENotificatorKind = "email"
)

var (
	SUPPORTED_NOTIFICATORS = []ENotificatorKind{
		NOTIFICATOR_WEBHOOK,
		NOTIFICATOR_TELEGRAM,
		NOTIFICATOR_DISCORD,
		NOTIFICATOR_EMAIL,
	}
)

type ENotificationType string

const (
	ADMIN_NOTIFICATION   ENotificationType = "admin"
	PAYROLL_NOTIFICATION ENotificationType = "payroll"
)
