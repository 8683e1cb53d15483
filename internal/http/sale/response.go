package sale

import (
	"time"

	"github.com/google/uuid"

	"github.com/elcarbonero/brasa/internal/sale"
)

type saleResponse struct {
	ID           uuid.UUID   `json:"id"`
	CustomerID   *uuid.UUID  `json:"cliente_id,omitempty"`
	CustomerName string      `json:"cliente"`
	Date         time.Time   `json:"fecha_venta"`
	TotalUSD     float64     `json:"total"`
	TotalBS      float64     `json:"total_bs"`
	RateApplied  float64     `json:"tasa_cambio_aplicada"`
	Status       sale.Status `json:"estado"`
	CreatedAt    time.Time   `json:"fecha_creacion"`
}

type itemResponse struct {
	ID           uuid.UUID  `json:"id"`
	ProductID    *uuid.UUID `json:"producto_id,omitempty"`
	Quantity     int        `json:"cantidad"`
	UnitPriceUSD float64    `json:"precio_unitario"`
	UnitPriceBS  float64    `json:"precio_unitario_bs"`
	SubtotalUSD  float64    `json:"subtotal"`
	SubtotalBS   float64    `json:"subtotal_bs"`
}

type detailResponse struct {
	saleResponse
	Items []itemResponse `json:"items"`
}

type pageResponse struct {
	Data  []saleResponse `json:"data"`
	Count int            `json:"count"`
}

func toResponse(v *sale.Sale) saleResponse {
	return saleResponse{
		ID:           v.ID,
		CustomerID:   v.CustomerID,
		CustomerName: v.CustomerName,
		Date:         v.Date,
		TotalUSD:     v.TotalUSD,
		TotalBS:      v.TotalBS,
		RateApplied:  v.RateApplied,
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
	}
}

func toDetailResponse(v *sale.Sale, items []*sale.Item) detailResponse {
	resp := detailResponse{
		saleResponse: toResponse(v),
		Items:        make([]itemResponse, len(items)),
	}

	for i, it := range items {
		resp.Items[i] = itemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			UnitPriceUSD: it.UnitPriceUSD,
			UnitPriceBS:  it.UnitPriceBS,
			SubtotalUSD:  it.SubtotalUSD,
			SubtotalBS:   it.SubtotalBS,
		}
	}

	return resp
}

func toPageResponse(sales []*sale.Sale, count int) pageResponse {
	resp := pageResponse{
		Data:  make([]saleResponse, len(sales)),
		Count: count,
	}

	for i, v := range sales {
		resp.Data[i] = toResponse(v)
	}

	return resp
}
