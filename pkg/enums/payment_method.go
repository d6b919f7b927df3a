package enums

type PaymentMethod string

const (
	PaymentMethodCOD     PaymentMethod = "COD"
	PaymentMethodPrepaid PaymentMethod = "prepaid"
)
