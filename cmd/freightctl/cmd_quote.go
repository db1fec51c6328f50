package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"freightrate/common/model"
	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/entity/etquote"
	"freightrate/internal/app/domains/entity/etvendor"
	"freightrate/internal/app/domains/modules/mdquote"
	"freightrate/internal/app/domains/repo/rpvendor"
	"freightrate/pkg/config"
	"freightrate/pkg/pincode"
)

// offlineVendorID 离线报价不落库，使用固定的承运商 ID
const offlineVendorID int64 = 1

// cardFile 离线报价使用的承运商价格表（YAML）
type cardFile struct {
	Name        string               `yaml:"name"`
	Mode        string               `yaml:"mode"`
	Zones       []string             `yaml:"zones"`
	TransitDays [][]float64          `yaml:"transitDays"`
	RateCard    model.RateCardRecord `yaml:"rateCard"`
}

// quoteOptions 货件参数
type quoteOptions struct {
	FromZone    string
	ToZone      string
	ODA         bool
	Boxes       int
	Length      float64
	Width       float64
	Height      float64
	Weight      float64
	Payment     string
	Fragile     bool
	Appointment bool
}

var (
	cardPath string
	quoteOpt quoteOptions
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a shipment against a YAML rate card without a database",
	Example: `  freightctl quote --card gati.yaml --from N1 --to W1 --weight 5 --length 40 --width 40 --height 40 --boxes 10`,
	RunE: runQuote,
}

func init() {
	f := quoteCmd.Flags()
	f.StringVar(&cardPath, "card", "", "价格表 YAML 文件")
	f.StringVar(&quoteOpt.FromZone, "from", "", "起点区域")
	f.StringVar(&quoteOpt.ToZone, "to", "", "终点区域")
	f.BoolVar(&quoteOpt.ODA, "oda", false, "终点是否为偏远地区")
	f.IntVar(&quoteOpt.Boxes, "boxes", 1, "箱数")
	f.Float64Var(&quoteOpt.Length, "length", 0, "长（cm）")
	f.Float64Var(&quoteOpt.Width, "width", 0, "宽（cm）")
	f.Float64Var(&quoteOpt.Height, "height", 0, "高（cm）")
	f.Float64Var(&quoteOpt.Weight, "weight", 0, "单箱重量（kg）")
	f.StringVar(&quoteOpt.Payment, "payment", "prepaid", "付款方式 prepaid | topay | cod")
	f.BoolVar(&quoteOpt.Fragile, "fragile", false, "易碎品（收取保险费）")
	f.BoolVar(&quoteOpt.Appointment, "appointment", false, "预约送货")
	_ = quoteCmd.MarkFlagRequired("card")
	_ = quoteCmd.MarkFlagRequired("from")
	_ = quoteCmd.MarkFlagRequired("to")
	_ = quoteCmd.MarkFlagRequired("weight")
}

func runQuote(cmd *cobra.Command, args []string) error {
	card, err := readCard(cardPath)
	if err != nil {
		return err
	}

	cfg, err := loadQuoteConfig()
	if err != nil {
		return err
	}

	q, err := quoteFromCard(mdquote.NewEngine(mdquote.PolicyFromConfig(cfg.Quote)), card, quoteOpt)
	if err != nil {
		return err
	}
	return renderQuote(cmd.OutOrStdout(), q)
}

// loadQuoteConfig 指定 --config 时使用文件中的报价策略，否则使用默认值
func loadQuoteConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.Defaults()
}

func readCard(path string) (*cardFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card failed: %w", err)
	}
	var card cardFile
	if err := yaml.Unmarshal(raw, &card); err != nil {
		return nil, fmt.Errorf("parse card failed: %w", err)
	}
	return &card, nil
}

// quoteFromCard 按价格表构造承运商并计算单条报价
func quoteFromCard(engine *mdquote.Engine, card *cardFile, opt quoteOptions) (*etquote.Quote, error) {
	// 1. 构造承运商
	mode := etprimitive.ModeRoad
	if card.Mode != "" {
		m, err := etprimitive.ParseMode(card.Mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}
	zones := make([]etvendor.Zone, 0, len(card.Zones))
	for _, z := range card.Zones {
		zones = append(zones, etvendor.Zone{Name: pincode.NormalizeZone(z), Coverage: etvendor.CoverageAll})
	}
	name := card.Name
	if name == "" {
		name = "offline"
	}
	vendor, err := etvendor.NewVendor(offlineVendorID, 0, name, mode, zones)
	if err != nil {
		return nil, err
	}
	if err := vendor.SetRateCard(rpvendor.RateCardFromRecord(&card.RateCard), card.TransitDays); err != nil {
		return nil, err
	}

	// 2. 区域对
	from, to := pincode.NormalizeZone(opt.FromZone), pincode.NormalizeZone(opt.ToZone)
	rate, ok := vendor.Rate(from, to)
	if !ok {
		return nil, fmt.Errorf("%w: %s->%s", mdquote.ErrLaneNotServed, from, to)
	}
	transit, _ := vendor.Transit(from, to)
	lane := etquote.Lane{
		OriginZone:      from,
		DestinationZone: to,
		UnitRate:        rate,
		TransitDays:     transit,
		DestinationODA:  opt.ODA,
	}

	// 3. 货件
	payment, err := etprimitive.ParsePaymentMode(opt.Payment)
	if err != nil {
		return nil, err
	}
	box := etquote.Box{
		Count:        opt.Boxes,
		Length:       opt.Length,
		Width:        opt.Width,
		Height:       opt.Height,
		WeightPerBox: opt.Weight,
	}
	if box.Count < 1 {
		return nil, etquote.ErrInvalidBoxCount
	}
	if box.WeightPerBox <= 0 {
		return nil, etquote.ErrInvalidWeight
	}
	if box.Length < 0 || box.Width < 0 || box.Height < 0 {
		return nil, etquote.ErrInvalidDimension
	}
	shipment := &etquote.Shipment{
		Mode:        mode,
		Boxes:       []etquote.Box{box},
		Fragile:     opt.Fragile,
		PaymentMode: payment,
		Appointment: opt.Appointment,
	}

	return engine.Calculate(shipment, vendor, lane)
}

func renderQuote(w io.Writer, q *etquote.Quote) error {
	if q == nil || q.Charges == nil {
		return errors.New("nothing to render")
	}
	c := q.Charges
	money := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

	rows := [][]string{
		{"Base freight", money(c.BaseFreight)},
		{"Fuel surcharge", money(c.FuelSurcharge)},
		{"ROV", money(c.ROV)},
		{"Insurance", money(c.Insurance)},
		{"ODA", money(c.ODA)},
		{"COD", money(c.COD)},
		{"Prepaid", money(c.Prepaid)},
		{"To-pay", money(c.ToPay)},
		{"Handling", money(c.Handling)},
		{"FM", money(c.FM)},
		{"Appointment", money(c.Appointment)},
		{"Docket", money(c.Docket)},
		{"Green tax", money(c.GreenTax)},
		{"DACC", money(c.DACC)},
		{"Misc", money(c.Misc)},
		{"Subtotal", money(c.Subtotal)},
	}
	if c.MinChargesApplied {
		rows = append(rows, []string{"Minimum charges applied", money(c.MinCharges)})
	}
	rows = append(rows, []string{"Total", money(q.TotalCharges)})

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CHARGE", "AMOUNT").
		Rows(rows...)

	header := fmt.Sprintf("%s (%s) %s -> %s\nactual %.2f kg, volumetric %.2f kg, chargeable %.2f kg, rate %.2f/kg",
		q.TransporterName, q.Mode.Display(), q.OriginZone, q.DestinationZone,
		q.ActualWeight, q.VolumetricWeight, q.ChargeableWeight, q.UnitPrice)
	if q.EstimatedTime > 0 {
		header += fmt.Sprintf(", estimated %d days", q.EstimatedTime)
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", header, t.String())
	return err
}
