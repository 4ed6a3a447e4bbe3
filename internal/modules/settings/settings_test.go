package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Inovatum/site-vendas/internal/gateway"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func TestFromRowDecodesSlotsInOrder(t *testing.T) {
	exp := time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC)
	row := gateway.SettingsRow{
		StoreName:      "Minha Loja",
		WhatsAppNumber: "5511999999999",

		CouponCode1: "DEZ", CouponType1: "percentage", CouponValue1: f(0.10),
		CouponCode2: "VALE50", CouponType2: "fixed", CouponValue2: f(50), CouponExpiration2: &exp,
		CouponCode3: "LIMITADO", CouponType3: "percentage", CouponValue3: f(0.05), CouponUsageLimit3: i(2),
	}

	st := FromRow(row)
	require.Len(t, st.Coupons, 3)
	require.Equal(t, "DEZ", st.Coupons[0].Code)
	require.Equal(t, Percentage, st.Coupons[0].Type)
	require.Equal(t, "VALE50", st.Coupons[1].Code)
	require.Equal(t, Fixed, st.Coupons[1].Type)
	require.Equal(t, &exp, st.Coupons[1].Expiration)
	require.Equal(t, 2, *st.Coupons[2].UsageLimit)
}

func TestFromRowSkipsEmptySlots(t *testing.T) {
	row := gateway.SettingsRow{
		CouponCode2: "SO-O-DOIS", CouponType2: "fixed", CouponValue2: f(10),
	}
	st := FromRow(row)
	require.Len(t, st.Coupons, 1)
	require.Equal(t, "SO-O-DOIS", st.Coupons[0].Code)
}

func TestRowRoundTrip(t *testing.T) {
	st := Settings{
		StoreName:      "Loja",
		WhatsAppNumber: "5511",
		Coupons: []Coupon{
			{Code: "A", Type: Percentage, Value: f(0.1)},
			{Code: "B", Type: Fixed, Value: f(25), UsageLimit: i(3)},
		},
	}
	back := FromRow(st.Row())
	require.Equal(t, st.Coupons, back.Coupons)
}

func TestFindCouponNormalizesAndFollowsSlotOrder(t *testing.T) {
	st := Settings{Coupons: []Coupon{
		{Code: "dez", Type: Percentage, Value: f(0.10)},
		{Code: "DEZ", Type: Fixed, Value: f(99)},
	}}

	c, ok := st.FindCoupon("  dEz ")
	require.True(t, ok)
	require.Equal(t, Percentage, c.Type, "o primeiro slot que casa vence")

	_, ok = st.FindCoupon("NADA")
	require.False(t, ok)

	_, ok = st.FindCoupon("")
	require.False(t, ok)
}

func TestFindCouponIgnoresUnusableSlots(t *testing.T) {
	st := Settings{Coupons: []Coupon{
		{Code: "SEMTIPO", Value: f(0.10)},
		{Code: "SEMVALOR", Type: Percentage},
		{Code: "OK", Type: Percentage, Value: f(0.10)},
	}}

	_, ok := st.FindCoupon("SEMTIPO")
	require.False(t, ok)
	_, ok = st.FindCoupon("SEMVALOR")
	require.False(t, ok)
	_, ok = st.FindCoupon("OK")
	require.True(t, ok)
}

func TestCouponChecks(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	require.True(t, Coupon{Expiration: &past}.Expired(now))
	require.False(t, Coupon{Expiration: &future}.Expired(now))
	require.False(t, Coupon{}.Expired(now), "sem expiração não expira")

	require.True(t, Coupon{UsageLimit: i(0)}.Exhausted())
	require.False(t, Coupon{UsageLimit: i(1)}.Exhausted())
	require.False(t, Coupon{}.Exhausted(), "sem limite é ilimitado")
}
