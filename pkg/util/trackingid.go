package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateTrackingID returns a customer-facing tracking identifier with
// format: TRK-YYYYMMDD-XXXXXXXX.
func GenerateTrackingID() string {
	datePart := time.Now().Format("20060102")
	randomPart := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TRK-%s-%s", datePart, randomPart)
}
