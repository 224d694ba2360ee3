// Command processor imports purchase-order feed files dropped by the
// upstream ERP. Each PO_*.csv becomes purchase orders entering the
// receiving workflow at sent_to_store; processed filenames are logged
// so a file is never imported twice.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fiber-erp/apperrors"
	"fiber-erp/config"
	"fiber-erp/controllers/idgen"
	"fiber-erp/database"
	"fiber-erp/models"
	"fiber-erp/repositories"
	"fiber-erp/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

func main() {
	config.LoadConfig()
	utils.InitLogger(config.LogLevel)
	idgen.Init()

	db, err := database.Open()
	if err != nil {
		utils.Log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		utils.Log.WithError(err).Fatal("failed to auto migrate")
	}

	files, err := filepath.Glob(filepath.Join(config.POFeedDir, "PO_*.csv"))
	if err != nil {
		utils.Log.WithError(err).Fatal("failed to read feed directory")
	}

	summary := make([]string, 0, len(files))
	for _, file := range files {
		imported, skipped, err := processFeedFile(db, file)
		if err != nil {
			utils.Log.WithError(err).WithField("file", file).Error("feed file failed")
			summary = append(summary, fmt.Sprintf("%s: FAILED (%v)", filepath.Base(file), err))
			continue
		}
		summary = append(summary, fmt.Sprintf("%s: %d orders imported, %d skipped",
			filepath.Base(file), imported, skipped))
	}

	if len(summary) > 0 {
		sendSummary(summary)
	}
}

// processFeedFile imports one feed file. Rows share an order number;
// consecutive rows of the same order become its lines.
func processFeedFile(db *gorm.DB, filename string) (int, int, error) {
	base := filepath.Base(filename)

	var existing models.FileLog
	if err := db.Where("filename = ?", base).First(&existing).Error; err == nil {
		utils.Log.WithField("file", base).Info("already processed, skipping")
		return 0, 0, nil
	}

	info, err := os.Stat(filename)
	if err != nil {
		return 0, 0, err
	}

	f, err := os.Open(filename)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	orders, err := parseFeed(f)
	if err != nil {
		return 0, 0, err
	}

	repo := repositories.NewPurchaseOrderRepository(db)
	correlation := uuid.NewString()
	imported, skipped := 0, 0

	for _, po := range orders {
		if err := repo.Create(po); err != nil {
			if apperrors.IsKind(err, apperrors.KindDuplicate) {
				skipped++
				continue
			}
			return imported, skipped, err
		}
		utils.Log.WithFields(map[string]interface{}{
			"order_no":    po.OrderNo,
			"correlation": correlation,
		}).Info("purchase order imported")
		imported++
	}

	// A failed log write means this file would be re-imported next run;
	// the order-number duplicate guard catches that, but it deserves a
	// loud warning.
	if err := db.Create(&models.FileLog{Filename: base, DateModified: info.ModTime()}).Error; err != nil {
		utils.Log.WithError(err).WithField("file", base).Warn("feed file not recorded as processed")
	}
	return imported, skipped, nil
}

// parseFeed reads rows of the form:
// order_no,vendor_id,item_code,description,uom,quantity,unit_price,expected_date
func parseFeed(r io.Reader) ([]*models.PurchaseOrder, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 8

	var orders []*models.PurchaseOrder
	byNumber := map[string]*models.PurchaseOrder{}
	first := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			if strings.EqualFold(record[0], "order_no") {
				continue
			}
		}

		orderNo := strings.TrimSpace(record[0])
		if orderNo == "" {
			continue
		}

		po, ok := byNumber[orderNo]
		if !ok {
			vendorID, err := strconv.Atoi(strings.TrimSpace(record[1]))
			if err != nil {
				return nil, fmt.Errorf("order %s: bad vendor id %q", orderNo, record[1])
			}
			po = &models.PurchaseOrder{
				OrderNo:              orderNo,
				VendorID:             uint(vendorID),
				ExpectedDeliveryDate: strings.TrimSpace(record[7]),
			}
			byNumber[orderNo] = po
			orders = append(orders, po)
		}

		qty, err := strconv.Atoi(strings.TrimSpace(record[5]))
		if err != nil {
			return nil, fmt.Errorf("order %s: bad quantity %q", orderNo, record[5])
		}
		price, err := decimal.NewFromString(strings.TrimSpace(record[6]))
		if err != nil {
			return nil, fmt.Errorf("order %s: bad unit price %q", orderNo, record[6])
		}

		po.Items = append(po.Items, models.PurchaseOrderItem{
			ItemCode:    strings.TrimSpace(record[2]),
			Description: strings.TrimSpace(record[3]),
			Uom:         strings.TrimSpace(record[4]),
			Quantity:    qty,
			UnitPrice:   price,
		})
		po.TotalAmount = po.TotalAmount.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}

	return orders, nil
}

func sendSummary(lines []string) {
	if config.SMTPHost == "" || config.NotifyEmail == "" {
		utils.Log.Info("feed summary:\n" + strings.Join(lines, "\n"))
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.SMTPFrom)
	m.SetHeader("To", config.NotifyEmail)
	m.SetHeader("Subject", "[ERP] Purchase order feed import")
	m.SetBody("text/plain", strings.Join(lines, "\n"))

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
	if err := dialer.DialAndSend(m); err != nil {
		utils.Log.WithError(err).Warn("summary mail not sent")
	}
}
