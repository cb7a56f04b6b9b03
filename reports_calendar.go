package tradematch

import "time"

// CalendarDay carries the realized P&L and trade count of one calendar
// day.
type CalendarDay struct {
	Date       Date  `json:"date"`
	RealizedPL Money `json:"realizedPL"`
	Trades     int   `json:"trades"`
	IsToday    bool  `json:"isToday"`
}

// CalendarMonth is one month of the yearly grid, with one entry per true
// calendar day and month totals.
type CalendarMonth struct {
	Year           int           `json:"year"`
	Month          time.Month    `json:"month"`
	IsCurrentMonth bool          `json:"isCurrentMonth"`
	RealizedPL     Money         `json:"realizedPL"`
	Trades         int           `json:"trades"`
	Days           []CalendarDay `json:"days"`
}

// Calendar returns exactly twelve months for the given year, each with
// one day per true calendar day (leap-aware), aggregating converted
// realized P&L from trades exiting that day. The is-today and
// is-current-month flags come from the calculator's clock, which defaults
// to the wall clock; everything else is a pure function of the trades.
func (p *Performance) Calendar(year int, rates *Rates) []CalendarMonth {
	cur := rates.Reporting()

	type dayTotal struct {
		pl     Money
		trades int
	}
	totals := make(map[Date]dayTotal)
	for _, t := range p.trades {
		if t.ExitDate.Year() != year {
			continue
		}
		d := totals[t.ExitDate]
		d.pl = d.pl.Add(rates.Convert(t.RealizedPL))
		d.trades++
		totals[t.ExitDate] = d
	}

	today := NewDate(p.now().Date())

	months := make([]CalendarMonth, 0, 12)
	for m := time.January; m <= time.December; m++ {
		month := CalendarMonth{
			Year:           year,
			Month:          m,
			IsCurrentMonth: today.Year() == year && today.Month() == m,
			RealizedPL:     M(0, cur),
		}
		for day := 1; day <= DaysIn(year, m); day++ {
			on := NewDate(year, m, day)
			total := totals[on]
			pl := total.pl
			if pl.Currency() == "" {
				pl = M(0, cur)
			}
			month.Days = append(month.Days, CalendarDay{
				Date:       on,
				RealizedPL: pl,
				Trades:     total.trades,
				IsToday:    on == today,
			})
			month.RealizedPL = month.RealizedPL.Add(pl)
			month.Trades += total.trades
		}
		months = append(months, month)
	}
	return months
}
