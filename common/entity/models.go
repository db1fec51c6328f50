package entity

// Models 返回需要建表的全部模型，供 AutoMigrate 使用
func Models() []interface{} {
	return []interface{}{
		&Customer{},
		&Vendor{},
		&PincodeZone{},
		&ImportJob{},
		&QuoteRecord{},
	}
}
