package seating

import "weddingdesk/internal/model"

type seatKey struct {
	guestID     int64
	personIndex int
}

func eligible(attendance string) bool {
	return attendance == model.AttendanceConfirmed || attendance == model.AttendancePending
}

// Reconcile derives the sidebar of unassigned candidates from the guest
// roster and the current assignment set. Declined attendees are never
// candidates. When both attendees of a guest are eligible and unassigned
// they are emitted as one combined couple entry ("A & B") so the sidebar
// never lists a couple twice; otherwise each unassigned eligible attendee
// becomes a single entry flagged with whether its guest record names a
// second attendee. Pure and order-stable: the output follows roster order,
// attendee 1 before attendee 2.
func Reconcile(guests []model.Guest, assignments []model.SeatAssignment) []model.UnassignedCandidate {
	seated := make(map[seatKey]bool, len(assignments))
	for _, a := range assignments {
		seated[seatKey{a.GuestID, a.PersonIndex}] = true
	}

	out := make([]model.UnassignedCandidate, 0)
	for _, g := range guests {
		hasSecond := g.Person2Name != ""
		open1 := g.Person1Name != "" && eligible(g.Attendance1) && !seated[seatKey{g.ID, 1}]
		open2 := hasSecond && eligible(g.Attendance2) && !seated[seatKey{g.ID, 2}]

		if open1 && open2 {
			out = append(out, model.UnassignedCandidate{
				GuestID:            g.ID,
				PersonIndexes:      []int{1, 2},
				DisplayName:        g.Person1Name + " & " + g.Person2Name,
				Attendance:         coupleAttendance(g.Attendance1, g.Attendance2),
				DietaryRestriction: joinDietary(g.DietaryRestriction1, g.DietaryRestriction2),
				HostTag:            g.HostTag,
				Couple:             true,
				HasCompanion:       true,
			})
			continue
		}
		if open1 {
			out = append(out, singleCandidate(&g, 1, hasSecond))
		}
		if open2 {
			out = append(out, singleCandidate(&g, 2, hasSecond))
		}
	}
	return out
}

func singleCandidate(g *model.Guest, personIndex int, hasSecond bool) model.UnassignedCandidate {
	return model.UnassignedCandidate{
		GuestID:            g.ID,
		PersonIndexes:      []int{personIndex},
		DisplayName:        g.AttendeeName(personIndex),
		Attendance:         g.Attendance(personIndex),
		DietaryRestriction: g.DietaryRestriction(personIndex),
		HostTag:            g.HostTag,
		HasCompanion:       hasSecond,
	}
}

// coupleAttendance is confirmed only when both attendees are.
func coupleAttendance(a1, a2 string) string {
	if a1 == model.AttendanceConfirmed && a2 == model.AttendanceConfirmed {
		return model.AttendanceConfirmed
	}
	return model.AttendancePending
}

func joinDietary(d1, d2 string) string {
	switch {
	case d1 == "":
		return d2
	case d2 == "":
		return d1
	default:
		return d1 + " / " + d2
	}
}
