package postgres

import (
	"strings"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/repository"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/store"
	"github.com/cavijaykg-ops/site-inventory-wise/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
)

const (
	itemsTable       = "inventory_items"
	receiptsTable    = "stock_receipts"
	consumptionTable = "stock_consumption"
	logsTable        = "transaction_logs"
)

// builder is satisfied by both *goqu.Database and *goqu.TxDatabase.
type builder interface {
	From(from ...interface{}) *goqu.SelectDataset
	Insert(table interface{}) *goqu.InsertDataset
	Update(table interface{}) *goqu.UpdateDataset
}

var logAliases = map[string]string{
	"type": "l.type",
}

func itemsQuery(db builder) *goqu.SelectDataset {
	return db.From(itemsTable).Order(goqu.C("item_name").Asc())
}

func receiptsQuery(db builder) *goqu.SelectDataset {
	return db.From(receiptsTable).Order(goqu.C("created_at").Desc())
}

func consumptionQuery(db builder) *goqu.SelectDataset {
	return db.From(consumptionTable).Order(goqu.C("created_at").Desc())
}

func logsQuery(db builder, filter store.LogFilter) *goqu.SelectDataset {
	conditions := repository.NewQueryBuilder()
	if filter.Type != "" {
		conditions.AddCondition("type", filter.Type)
	}

	query := db.From(goqu.T(logsTable).As("l")).
		Select(
			goqu.I("l.id").As("id"),
			goqu.I("l.type").As("type"),
			goqu.I("l.item_code").As("item_code"),
			goqu.I("l.item_name").As("item_name"),
			goqu.I("l.quantity").As("quantity"),
			goqu.I("l.timestamp").As("timestamp"),
			goqu.I("l.user_name").As("user_name"),
			goqu.I("l.action").As("action"),
		).
		Where(conditions.BuildConditions(logAliases)).
		Order(goqu.I("l.timestamp").Desc())

	if filter.ItemCode != "" {
		query = query.Where(goqu.Func("UPPER", goqu.I("l.item_code")).Eq(strings.ToUpper(filter.ItemCode)))
	}
	if filter.Limit > 0 {
		query = query.Limit(uint(filter.Limit))
	}
	return query
}

// upsertReceiptItem adds the received quantity to the item, creating it
// when the code is new, and moves last_rate to the receipt's rate.
func upsertReceiptItem(db builder, receipt models.StockReceipt) *goqu.InsertDataset {
	return db.Insert(itemsTable).
		Rows(goqu.Record{
			"item_code":           receipt.ItemCode,
			"item_name":           receipt.ItemName,
			"current_stock":       receipt.QuantityReceived,
			"unit_of_measurement": receipt.UnitOfMeasurement,
			"last_rate":           receipt.RatePerUnit,
			"total_value":         receipt.QuantityReceived.Mul(receipt.RatePerUnit),
		}).
		OnConflict(
			goqu.DoUpdate(
				"item_code",
				goqu.Record{
					"current_stock": goqu.L("inventory_items.current_stock + EXCLUDED.current_stock"),
					"last_rate":     goqu.L("EXCLUDED.last_rate"),
					"total_value":   goqu.L("(inventory_items.current_stock + EXCLUDED.current_stock) * EXCLUDED.last_rate"),
					"updated_at":    goqu.L("NOW()"),
				},
			),
		)
}

// decreaseStock only touches the row while it still holds quantity.
func decreaseStock(db builder, itemCode string, quantity decimal.Decimal) *goqu.UpdateDataset {
	return db.Update(itemsTable).
		Set(goqu.Record{
			"current_stock": goqu.L("current_stock - ?", quantity),
			"total_value":   goqu.L("(current_stock - ?) * last_rate", quantity),
			"updated_at":    goqu.L("NOW()"),
		}).
		Where(goqu.Ex{"item_code": itemCode}).
		Where(goqu.C("current_stock").Gte(quantity))
}

func insertReceipt(db builder, receipt models.StockReceipt, author string) *goqu.InsertDataset {
	return db.Insert(receiptsTable).
		Rows(goqu.Record{
			"item_code":           receipt.ItemCode,
			"item_name":           receipt.ItemName,
			"quantity_received":   receipt.QuantityReceived,
			"rate_per_unit":       receipt.RatePerUnit,
			"unit_of_measurement": receipt.UnitOfMeasurement,
			"total_value":         receipt.TotalValue,
			"supplier_name":       receipt.SupplierName,
			"delivery_date":       receipt.DeliveryDate,
			"received_by":         receipt.ReceivedBy,
			"created_by":          author,
		}).
		Returning("id", "created_at")
}

func insertConsumption(db builder, consumption models.StockConsumption, author string) *goqu.InsertDataset {
	return db.Insert(consumptionTable).
		Rows(goqu.Record{
			"item_code":             consumption.ItemCode,
			"item_name":             consumption.ItemName,
			"quantity_used":         consumption.QuantityUsed,
			"purpose_activity_code": consumption.PurposeActivityCode,
			"used_by":               consumption.UsedBy,
			"date":                  consumption.Date,
			"remarks":               consumption.Remarks,
			"created_by":            author,
		}).
		Returning("id", "created_at")
}

func insertLog(db builder, log models.TransactionLog) *goqu.InsertDataset {
	return db.Insert(logsTable).
		Rows(goqu.Record{
			"id":        log.ID,
			"type":      log.Type,
			"item_code": log.ItemCode,
			"item_name": log.ItemName,
			"quantity":  log.Quantity,
			"timestamp": log.Timestamp,
			"user_name": log.User,
			"action":    log.Action,
		})
}

func upsertItems(db builder, items []models.InventoryItem) *goqu.InsertDataset {
	rows := make([]interface{}, 0, len(items))
	for _, item := range items {
		rows = append(rows, goqu.Record{
			"item_code":           item.ItemCode,
			"item_name":           item.ItemName,
			"current_stock":       item.CurrentStock,
			"unit_of_measurement": item.UnitOfMeasurement,
			"last_rate":           item.LastRate,
			"total_value":         item.StockValue(),
		})
	}

	return db.Insert(itemsTable).
		Rows(rows...).
		OnConflict(
			goqu.DoUpdate(
				"item_code",
				goqu.Record{
					"item_name":           goqu.L("EXCLUDED.item_name"),
					"current_stock":       goqu.L("EXCLUDED.current_stock"),
					"unit_of_measurement": goqu.L("EXCLUDED.unit_of_measurement"),
					"last_rate":           goqu.L("EXCLUDED.last_rate"),
					"total_value":         goqu.L("EXCLUDED.total_value"),
					"updated_at":          goqu.L("NOW()"),
				},
			),
		)
}
