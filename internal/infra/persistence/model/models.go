package model

// All lists every model in dependency order, parents first.
func All() []any {
	return []any{
		&ProfileModel{},
		&AddressModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&TodoModel{},
		&SellerMetricsModel{},
		&DailySalesModel{},
		&NotificationModel{},
		&SellerTipModel{},
	}
}
