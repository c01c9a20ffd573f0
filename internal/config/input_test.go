package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fungccc/HKMortgage2026/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "parameters:\n" +
		"  property_price: 7000000\n" +
		"  down_payment: 2000000\n" +
		"  tenure_years: 25\n" +
		"  rate_mode: historical\n" +
		"  p_discount: 1.75\n" +
		"  h_spread: 1.3\n" +
		"  h_cap_discount: 1.75\n" +
		"  refinance:\n" +
		"    enabled: true\n" +
		"    rebate_percent: 1.5\n" +
		"tables:\n" +
		"  fees:\n" +
		"    agency_fee_percent: 0.5\n" +
		"    legal_fee: 12000\n" +
		"    refinance_legal_fee: 3000\n" +
		"    cash_rebate_percent: 1\n" +
		"    debt_service_ratio: 0.4\n" +
		"    mortgage_link_cap_ratio: 0.5\n"

	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTemp(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 25, config.Parameters.TenureYears)
	assert.True(t, config.Parameters.Refinance.Enabled)
	require.NotNil(t, config.Tables)
	assert.True(t, config.Tables.Fees.LegalFee.Equal(decimal.NewFromInt(12000)))

	sim, err := NewSimulator(config)
	require.NoError(t, err)
	res, err := sim.Simulate(config.Parameters)
	require.NoError(t, err)
	assert.True(t, res.Affordability.LegalFee.Equal(decimal.NewFromInt(12000)))
	for _, ev := range res.Refinance.Events {
		assert.True(t, ev.LegalFee.Equal(decimal.NewFromInt(3000)))
	}
}

func TestLoadFromFile_JSON(t *testing.T) {
	doc := `{"parameters": {"property_price": 5000000, "down_payment": 1000000, "tenure_years": 20, "rate_mode": "custom", "custom_prime": 5.375, "custom_hibor": 3.5}}`
	config, err := NewInputParser().LoadFromFile(writeTemp(t, doc))
	require.NoError(t, err)
	assert.Equal(t, domain.RateModeCustom, config.Parameters.RateMode)
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	_, err = parser.LoadFromFile(writeTemp(t, "parameters: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	_, err = parser.LoadFromFile(writeTemp(t, "parameters:\n  tenure_years: 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.True(t, errors.Is(err, domain.ErrInvalidParameters))
}

func TestValidateConfiguration_Tables(t *testing.T) {
	parser := NewInputParser()
	base := parser.CreateExampleConfiguration()

	tests := []struct {
		name   string
		tables *domain.MarketTables
	}{
		{"negative cycle rate", &domain.MarketTables{
			MarketCycle: []domain.MarketCondition{{Prime: decimal.NewFromInt(-1), Hibor: decimal.Zero}},
		}},
		{"negative fee", &domain.MarketTables{
			Fees: &domain.FeeSchedule{LegalFee: decimal.NewFromInt(-1), DebtServiceRatio: decimal.NewFromFloat(0.5)},
		}},
		{"cap ratio above one", &domain.MarketTables{
			Fees: &domain.FeeSchedule{MortgageLinkCapRatio: decimal.NewFromInt(2), DebtServiceRatio: decimal.NewFromFloat(0.5)},
		}},
		{"zero dsr", &domain.MarketTables{Fees: &domain.FeeSchedule{}}},
		{"descending stamp duty", &domain.MarketTables{
			StampDuty: &domain.StampDutySchedule{Tiers: []domain.StampDutyTier{
				{UpTo: decimal.NewFromInt(10), Flat: decimal.NewFromInt(1)},
				{UpTo: decimal.NewFromInt(5), Flat: decimal.NewFromInt(1)},
			}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			cfg.Tables = tt.tables
			err := parser.ValidateConfiguration(&cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "tables validation failed")
		})
	}
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	require.NoError(t, parser.ValidateConfiguration(config))
	p := config.Parameters
	assert.True(t, p.LoanAmount().Equal(decimal.NewFromInt(5_000_000)))
	assert.Equal(t, 30, p.TenureYears)
	assert.Equal(t, 2026, p.StartYear)
	assert.True(t, p.FixedPlan.Enabled)
	assert.True(t, p.MortgageLink.Enabled)
	assert.True(t, p.Refinance.Enabled)
	assert.True(t, p.PartialRepayment.Enabled)
	assert.True(t, p.RentVsBuy.Enabled)

	// the example must survive a YAML round trip through the parser
	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	loaded, err := parser.Parse(data)
	require.NoError(t, err)
	assert.True(t, loaded.Parameters.CustomPrime.Equal(p.CustomPrime))
	assert.Equal(t, p.PartialRepayment.Year, loaded.Parameters.PartialRepayment.Year)
}

func TestDefaultParameters_OverlaysOff(t *testing.T) {
	p := DefaultParameters()
	assert.False(t, p.FixedPlan.Enabled)
	assert.False(t, p.MortgageLink.Enabled)
	assert.False(t, p.Refinance.Enabled)
	assert.False(t, p.PartialRepayment.Enabled)
	assert.NoError(t, p.Validate())
}

func TestLoadServerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("HKMORTGAGE_CONFIG", "")
		cfg, err := LoadServerConfig()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.ListenAddr)
		assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
		assert.Empty(t, cfg.RedisURL)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("HKMORTGAGE_CONFIG", "")
		t.Setenv("HKMORTGAGE_LISTEN_ADDR", ":9090")
		t.Setenv("HKMORTGAGE_CACHE_TTL", "2m")
		t.Setenv("HKMORTGAGE_RATE_LIMIT_RPS", "not-a-number")
		cfg, err := LoadServerConfig()
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.ListenAddr)
		assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
		assert.Equal(t, float64(5), cfg.RateLimitRPS)
	})

	t.Run("yaml file wins", func(t *testing.T) {
		path := writeTemp(t, "listen_addr: \":7070\"\nredis_url: redis://localhost:6379/0\ncache_ttl: 30s\n")
		t.Setenv("HKMORTGAGE_CONFIG", path)
		cfg, err := LoadServerConfig()
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.ListenAddr)
		assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
		assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	})

	t.Run("invalid", func(t *testing.T) {
		path := writeTemp(t, "cache_size: -1\n")
		t.Setenv("HKMORTGAGE_CONFIG", path)
		_, err := LoadServerConfig()
		assert.Error(t, err)
	})
}
