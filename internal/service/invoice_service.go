package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/haconeco/task-tracker/internal/domain"
)

// InvoiceService は作業時間と単価から請求額を計算する。状態を持たない。
type InvoiceService struct {
	currencies map[string]struct{}
}

// NewInvoiceService は受け付ける通貨コードを指定してInvoiceServiceを生成する。
func NewInvoiceService(currencies []string) *InvoiceService {
	set := make(map[string]struct{}, len(currencies))
	for _, c := range currencies {
		set[c] = struct{}{}
	}
	return &InvoiceService{currencies: set}
}

// CalculateInvoice は hours * rate を返す。通貨は検証のみに使い、換算や丸めは行わない。
func (s *InvoiceService) CalculateInvoice(hours, rate float64, currency string) (float64, error) {
	if math.IsNaN(hours) || hours < 0 {
		return 0, fmt.Errorf("%w: hours must not be negative", domain.ErrInvalidOperation)
	}
	if math.IsNaN(rate) || rate < 0 {
		return 0, fmt.Errorf("%w: rate must not be negative", domain.ErrInvalidOperation)
	}
	if _, ok := s.currencies[currency]; !ok {
		return 0, fmt.Errorf("%w: currency %q is not supported", domain.ErrInvalidOperation, currency)
	}
	return hours * rate, nil
}

// SupportedCurrencies は受け付ける通貨コードをソートして返す。
func (s *InvoiceService) SupportedCurrencies() []string {
	out := make([]string, 0, len(s.currencies))
	for c := range s.currencies {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
