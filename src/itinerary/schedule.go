package itinerary

import (
	"fmt"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// activityTable holds the morning, afternoon, and late-afternoon activities
// for the first five full days of a trip.
var activityTable = map[int][3]string{
	1: {"Visit main historical sites", "Explore local museums", "City walking tour"},
	2: {"Day trip to nearby attractions", "Local food tour", "Cultural experiences"},
	3: {"Nature and outdoor activities", "Shopping districts", "Local entertainment"},
	4: {"Hidden gems and local spots", "Relaxation activities", "Evening entertainment"},
	5: {"Adventure activities", "Photography spots", "Local festivals or events"},
}

var genericActivities = [3]string{
	"Explore local attractions", "Visit recommended spots", "Enjoy local culture",
}

// Schedule builds a day-by-day plan between the check-in and check-out dates
// (wire format YYYY-MM-DD). Day one is the arrival day, the last day (when the
// trip spans more than one) is the departure day, and interior days get a
// full-day plan. Unparseable dates degrade to a short apology rather than an
// error.
func Schedule(departureCity, arrivalCity, checkIn, checkOut string) string {
	in, errIn := time.Parse(dateFormat, checkIn)
	out, errOut := time.Parse(dateFormat, checkOut)
	if errIn != nil || errOut != nil {
		return fmt.Sprintf("\n🗓️ **Daily Itinerary for %s**\n\nUnable to generate detailed itinerary due to date parsing error.", arrivalCity)
	}

	numDays := int(out.Sub(in).Hours() / 24)

	var b strings.Builder
	fmt.Fprintf(&b, "\n🗓️ **DAILY ITINERARY FOR %s**\n", strings.ToUpper(arrivalCity))
	fmt.Fprintf(&b, "📅 Trip Duration: %d days (%s - %s)\n\n",
		numDays, in.Format("January 02, 2006"), out.Format("January 02, 2006"))

	for day := 0; day < numDays; day++ {
		current := in.AddDate(0, 0, day)
		dayNumber := day + 1

		fmt.Fprintf(&b, "## 📅 **DAY %d - %s**\n\n", dayNumber, current.Format("Monday, January 02, 2006"))

		switch {
		case day == 0:
			b.WriteString(arrivalDaySchedule(arrivalCity))
		case day == numDays-1:
			b.WriteString(departureDaySchedule(departureCity))
		default:
			b.WriteString(fullDaySchedule(dayNumber))
		}

		b.WriteString("\n---\n\n")
	}

	return b.String()
}

func arrivalDaySchedule(city string) string {
	return fmt.Sprintf(`**🌅 MORNING (8:00 AM - 12:00 PM)**
- 8:00 AM: Arrive at airport
- 9:00 AM: Immigration & baggage claim
- 10:00 AM: Airport transfer to hotel
- 11:00 AM: Hotel check-in and freshen up

**🌞 AFTERNOON (12:00 PM - 6:00 PM)**
- 12:00 PM: Lunch at local restaurant
- 2:00 PM: Explore %s city center
- 4:00 PM: Visit local market or shopping area
- 5:00 PM: Coffee break at café

**🌙 EVENING (6:00 PM - 10:00 PM)**
- 6:00 PM: Return to hotel
- 7:00 PM: Dinner at hotel or nearby restaurant
- 9:00 PM: Relax and prepare for next day
- 10:00 PM: Early rest for tomorrow's adventures`, city)
}

func departureDaySchedule(departureCity string) string {
	return fmt.Sprintf(`**🌅 MORNING (8:00 AM - 12:00 PM)**
- 8:00 AM: Hotel check-out
- 9:00 AM: Final shopping or last-minute sightseeing
- 10:00 AM: Return to hotel for luggage
- 11:00 AM: Airport transfer

**🌞 AFTERNOON (12:00 PM - 6:00 PM)**
- 12:00 PM: Arrive at airport
- 1:00 PM: Check-in and security
- 2:00 PM: Duty-free shopping or airport lounge
- 3:00 PM: Boarding for flight to %s

**🌙 EVENING (6:00 PM - 10:00 PM)**
- 6:00 PM: In-flight meal and entertainment
- 8:00 PM: Rest on flight
- 10:00 PM: Arrival at %s`, departureCity, departureCity)
}

func fullDaySchedule(dayNumber int) string {
	activities, ok := activityTable[dayNumber]
	if !ok {
		activities = genericActivities
	}

	return fmt.Sprintf(`**🌅 MORNING (8:00 AM - 12:00 PM)**
- 8:00 AM: Hotel breakfast
- 9:00 AM: %s
- 11:00 AM: Coffee break and rest

**🌞 AFTERNOON (12:00 PM - 6:00 PM)**
- 12:00 PM: Local lunch
- 2:00 PM: %s
- 4:00 PM: %s
- 5:30 PM: Return to hotel for rest

**🌙 EVENING (6:00 PM - 10:00 PM)**
- 6:00 PM: Hotel rest and freshen up
- 7:30 PM: Dinner at recommended restaurant
- 9:00 PM: Evening stroll or local entertainment
- 10:00 PM: Return to hotel`, activities[0], activities[1], activities[2])
}
