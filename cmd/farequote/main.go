// README: Offline fare and stay calculator; prints the itemised breakdown a guest would confirm.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"stayride/internal/modules/fare"
	"stayride/internal/modules/pricing"
	"stayride/internal/types"
)

type Config struct {
	Origin           types.Location
	Destination      types.Location
	Vehicle          string
	Currency         string
	At               string
	NightlyPrice     float64
	Nights           int
	Commission       float64
	SystemCommission float64
	Discounts        string
}

func main() {
	cfg := loadConfig()
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "farequote:", err)
		os.Exit(1)
	}
}

func loadConfig() Config {
	var cfg Config
	flag.Float64Var(&cfg.Origin.Latitude, "from-lat", -6.8781, "Origin latitude")
	flag.Float64Var(&cfg.Origin.Longitude, "from-lng", 39.2026, "Origin longitude")
	flag.Float64Var(&cfg.Destination.Latitude, "to-lat", -6.7924, "Destination latitude")
	flag.Float64Var(&cfg.Destination.Longitude, "to-lng", 39.2083, "Destination longitude")
	flag.StringVar(&cfg.Vehicle, "vehicle", envOrDefault("STAYRIDE_VEHICLE", string(fare.DefaultVehicle)), "Vehicle type (BODA, BAJAJI, CAR, XL, PREMIUM)")
	flag.StringVar(&cfg.Currency, "currency", envOrDefault("STAYRIDE_CURRENCY", fare.DefaultCurrency), "Currency code")
	flag.StringVar(&cfg.At, "at", "", "Pricing time, RFC3339 (default now)")
	flag.Float64Var(&cfg.NightlyPrice, "nightly", 0, "Nightly price; 0 skips the stay breakdown")
	flag.IntVar(&cfg.Nights, "nights", 1, "Number of nights")
	flag.Float64Var(&cfg.Commission, "commission", -1, "Property commission percent; negative uses the system commission")
	flag.Float64Var(&cfg.SystemCommission, "system-commission", envOrDefaultFloat("STAYRIDE_SYSTEM_COMMISSION_PERCENT", 0), "System commission percent")
	flag.StringVar(&cfg.Discounts, "discounts", "", "Discount rules as minDays:percent pairs, e.g. 7:15,30:25")
	flag.Parse()
	return cfg
}

func run(cfg Config) error {
	svc, err := fare.NewService(nil, nil)
	if err != nil {
		return err
	}

	var at *time.Time
	if cfg.At != "" {
		t, err := time.Parse(time.RFC3339, cfg.At)
		if err != nil {
			return fmt.Errorf("parse -at: %w", err)
		}
		at = &t
	}

	vt, ok := fare.ParseVehicleType(cfg.Vehicle)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown vehicle %q, pricing as %s\n", cfg.Vehicle, vt)
	}
	calc, err := svc.Quote(context.Background(), fare.QuoteRequest{
		Origin:      cfg.Origin,
		Destination: cfg.Destination,
		Currency:    cfg.Currency,
		At:          at,
		VehicleType: string(vt),
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "== Transport ==")
	fmt.Fprintf(w, "vehicle\t%s\n", calc.VehicleType)
	fmt.Fprintf(w, "distance\t%.2f km\n", calc.Distance)
	fmt.Fprintf(w, "estimated time\t%d min\n", calc.EstimatedTime)
	fmt.Fprintf(w, "base fare\t%.0f\n", calc.BaseFare)
	fmt.Fprintf(w, "distance fare\t%.0f\n", calc.DistanceFare)
	fmt.Fprintf(w, "time fare\t%.0f\n", calc.TimeFare)
	fmt.Fprintf(w, "surge\tx%.2f\n", calc.SurgeMultiplier)
	fmt.Fprintf(w, "fare total\t%.0f %s\n", calc.Total, calc.Currency)

	total := types.Money{Amount: calc.Total, Currency: calc.Currency}
	if cfg.NightlyPrice > 0 {
		services, err := buildServices(cfg)
		if err != nil {
			return err
		}
		b, err := pricing.ComposeBookingPrice(cfg.NightlyPrice, cfg.Nights, services, cfg.SystemCommission)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "\n== Stay ==")
		fmt.Fprintf(w, "original\t%.2f\n", b.OriginalPrice)
		fmt.Fprintf(w, "commission\t%.2f (%.2f%%)\n", b.CommissionAmount, b.CommissionPercent)
		fmt.Fprintf(w, "with commission\t%.2f\n", b.PriceWithCommission)
		fmt.Fprintf(w, "discount\t-%.2f (%.2f%%)\n", b.DiscountAmount, b.DiscountPercent)
		fmt.Fprintf(w, "stay total\t%.2f %s\n", b.FinalPrice, calc.Currency)
		total = types.Money{Amount: b.FinalPrice, Currency: calc.Currency}.Add(total)
	}

	fmt.Fprintf(w, "\nTOTAL\t%.2f %s\n", total.Amount, total.Currency)
	return w.Flush()
}

func buildServices(cfg Config) (pricing.Services, error) {
	var services pricing.Services
	if cfg.Commission >= 0 {
		pct := cfg.Commission
		services.CommissionPercent = &pct
	}
	rules, err := parseDiscounts(cfg.Discounts)
	if err != nil {
		return services, err
	}
	services.DiscountRules = rules
	return services, nil
}

// parseDiscounts reads "minDays:percent" pairs separated by commas.
func parseDiscounts(s string) ([]pricing.DiscountRule, error) {
	var rules []pricing.DiscountRule
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		days, pct, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("discount %q: want minDays:percent", part)
		}
		minDays, err := strconv.Atoi(strings.TrimSpace(days))
		if err != nil {
			return nil, fmt.Errorf("discount %q: %w", part, err)
		}
		percent, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return nil, fmt.Errorf("discount %q: %w", part, err)
		}
		rules = append(rules, pricing.DiscountRule{MinDays: minDays, DiscountPercent: percent, Enabled: true})
	}
	return rules, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
