package domain

var Tables = []interface{}{
	&Account{},
	&Address{},
	&PaymentCard{},
	&Property{},
	&Booking{},
}
