package sht3x

import "strings"

// Status is the SHT3x status register.
type Status uint16

// Bits for the status register
const (
	StatusChecksumError    Status = 0x0001 // last write had a bad checksum
	StatusCommandError     Status = 0x0002 // last command was not processed
	StatusResetDetected    Status = 0x0010 // reset since last clear
	StatusTemperatureAlert Status = 0x0400
	StatusHumidityAlert    Status = 0x0800
	StatusHeaterOn         Status = 0x2000
	StatusAlertPending     Status = 0x8000
)

var statusNames = []struct {
	bit  Status
	name string
}{
	{StatusAlertPending, "alert_pending"},
	{StatusHeaterOn, "heater_on"},
	{StatusHumidityAlert, "rh_alert"},
	{StatusTemperatureAlert, "t_alert"},
	{StatusResetDetected, "reset_detected"},
	{StatusCommandError, "command_error"},
	{StatusChecksumError, "checksum_error"},
}

// Has reports whether every bit of flag is set.
func (s Status) Has(flag Status) bool {
	return s&flag == flag
}

func (s Status) String() string {
	var names []string
	for _, sn := range statusNames {
		if s.Has(sn.bit) {
			names = append(names, sn.name)
		}
	}
	if len(names) == 0 {
		return "ok"
	}
	return strings.Join(names, "|")
}
