package usecase

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

const placeholderProductName = "Unnamed product"

type productsShape int

const (
	productsAbsent productsShape = iota
	productsEncoded
	productsList
)

func shapeOf(raw any) productsShape {
	switch t := raw.(type) {
	case nil:
		return productsAbsent
	case string:
		if strings.TrimSpace(t) == "" {
			return productsAbsent
		}
		return productsEncoded
	default:
		return productsList
	}
}

// NormalizeItems converte o campo products (string JSON, lista já estruturada
// ou ausente) numa lista canônica de itens. Quando não há itens utilizáveis
// devolve um único item sintético com o valor total do pedido.
func NormalizeItems(raw any, orderNumber string, orderAmount float64) []entity.OrderItem {
	switch shapeOf(raw) {
	case productsEncoded:
		var decoded any
		dec := json.NewDecoder(strings.NewReader(raw.(string)))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err != nil {
			log.Printf("[ITEMS] products inválido no pedido %s, usando item único: %v", orderNumber, err)
			return []entity.OrderItem{syntheticItem(orderNumber, orderAmount)}
		}
		items := mapItems(decoded)
		if len(items) == 0 {
			return []entity.OrderItem{syntheticItem(orderNumber, orderAmount)}
		}
		return items

	case productsList:
		items := mapItems(raw)
		if len(items) == 0 {
			return []entity.OrderItem{syntheticItem(orderNumber, orderAmount)}
		}
		return items

	default:
		return []entity.OrderItem{syntheticItem(orderNumber, orderAmount)}
	}
}

func mapItems(raw any) []entity.OrderItem {
	var entries []any
	switch t := raw.(type) {
	case []any:
		entries = t
	case map[string]any:
		entries = []any{t}
	default:
		return nil
	}

	items := make([]entity.OrderItem, 0, len(entries))
	for _, e := range entries {
		fields, ok := e.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, mapItem(fields))
	}
	return items
}

func mapItem(fields map[string]any) entity.OrderItem {
	item := entity.OrderItem{
		ProductRef:  strings.TrimSpace(toString(fields["sku"])),
		ProductName: strings.TrimSpace(toString(fields["name"])),
		Quantity:    1,
	}
	if item.ProductRef == "" {
		item.ProductRef = "item-" + uuid.New().String()
	}
	if item.ProductName == "" {
		item.ProductName = placeholderProductName
	}
	if q, ok := toFloat(fields["quantity"]); ok && q != 0 {
		item.Quantity = q
	}
	if price, ok := toFloat(fields["price"]); ok {
		item.UnitPrice = price
	} else if amount, ok := toFloat(fields["amount"]); ok {
		item.UnitPrice = amount
	}
	return item
}

func syntheticItem(orderNumber string, amount float64) entity.OrderItem {
	return entity.OrderItem{
		ProductRef:  "order-" + orderNumber,
		ProductName: fmt.Sprintf("Order #%s", orderNumber),
		Quantity:    1,
		UnitPrice:   amount,
	}
}

// ComputeTotal soma quantidade x preço; soma zero cai para o valor informado no topo do payload.
func ComputeTotal(items []entity.OrderItem, fallbackAmount float64) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Total()
	}
	if sum == 0 {
		return roundCents(fallbackAmount)
	}
	return roundCents(sum)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// MapPaymentStatus: só o token "paid" conta como pago.
func MapPaymentStatus(indicator string) string {
	if strings.EqualFold(strings.TrimSpace(indicator), "paid") {
		return entity.PaymentStatusPaid
	}
	return entity.PaymentStatusNotPaid
}
