package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/udisondev/rmsheet/internal/config"
	"github.com/udisondev/rmsheet/internal/data"
	"github.com/udisondev/rmsheet/internal/db"
	"github.com/udisondev/rmsheet/internal/model"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printRules(w io.Writer, md *data.MetaData, rules config.RuleSet) {
	tw := newTable(w)
	fmt.Fprintln(tw, "RACES\t")
	for _, r := range md.Races() {
		fmt.Fprintf(tw, "  %d\t%s\t%s\n", r.ID(), r.Name(), allowed(rules.RaceAllowed(r.ID()) && rules.SourceAllowed(r.Source())))
	}
	fmt.Fprintln(tw, "CULTURES\t")
	for _, c := range md.Cultures() {
		fmt.Fprintf(tw, "  %d\t%s\t%s\n", c.ID(), c.Name(), allowed(rules.SourceAllowed(c.Source())))
	}
	fmt.Fprintln(tw, "PROFESSIONS\t")
	for _, p := range md.Professions() {
		ok := rules.ProfessionAllowed(p.ID()) && rules.SourceAllowed(p.Source())
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", p.ID(), p.Name(), p.SpellUserType(), allowed(ok))
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d categories, %d skills, %d training packs, %d talents and flaws, %d shields\n",
		len(md.Categories()), len(md.Skills()), len(md.TrainingPacks()), len(md.TalentFlaws()), len(md.Shields()))
}

func allowed(ok bool) string {
	if ok {
		return ""
	}
	return "(excluded)"
}

func printSheet(w io.Writer, s *model.Sheet) {
	fmt.Fprintf(w, "%s  %s\n", s.ID(), s.Name())
	fmt.Fprintf(w, "%s / %s / %s, level %d", s.Race().Name(), s.Culture().Name(), s.Profession().Name(), s.Level())
	if !s.MagicRealm().IsEmpty() {
		fmt.Fprintf(w, ", realm %s", s.MagicRealm())
	}
	if s.InCreation() {
		fmt.Fprint(w, " (in creation)")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	tw := newTable(w)
	fmt.Fprintln(tw, "STAT\tTEMP\tPOT\tBONUS\tRACE\tMISC\tTOTAL")
	for _, a := range data.Attributes {
		st := s.Stat(a)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			a.Code(), st.Temp, st.Potential, s.StatBonus(a), s.Race().StatBonus(a), s.StatMiscComputed(a), s.StatBonusTotal(a))
	}
	tw.Flush()
	fmt.Fprintln(w)

	tw = newTable(w)
	fmt.Fprintf(tw, "Development points\t%d\n", s.DevPoints())
	fmt.Fprintf(tw, "Hit points\t%d\n", s.HitPoints())
	fmt.Fprintf(tw, "Power points\t%d\n", s.PowerPoints())
	fmt.Fprintf(tw, "Exhaustion points\t%d\n", s.ExhaustionPoints())
	fmt.Fprintf(tw, "Base movement\t%d\n", s.BaseMovementRate())
	fmt.Fprintf(tw, "Defensive bonus\t%d (missile %d)\n", s.DefensiveBonus(), s.MissileDefensiveBonus())
	fmt.Fprintf(tw, "Maneuver penalty\t%d (encumbrance %d)\n", s.ManeuverPenalty(), s.EncumbrancePenalty())
	fmt.Fprintf(tw, "Recovery per hour\t%d hits, %d power points\n", s.HitRecoveryPerHour(), s.PowerPointRecoveryPerHour())
	fmt.Fprintf(tw, "Tolerance\t%d\n", s.Tolerance())
	fmt.Fprintf(tw, "Divine status\t%s\n", s.DivineStatus().Name)
	tw.Flush()
	fmt.Fprintln(w)

	tw = newTable(w)
	fmt.Fprintln(tw, "RESISTANCE\tBONUS")
	for _, r := range data.Resistances {
		fmt.Fprintf(tw, "%s\t%d\n", r, s.ResistanceBonus(r))
	}
	tw.Flush()

	snap := s.Snapshot()
	if len(snap.SkillRanks) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintln(tw, "SKILL\tCATEGORY\tRANKS\tBONUS\t")
	for _, r := range snap.SkillRanks {
		sk := s.Skill(r.ID)
		if sk == nil || (r.Value == 0 && !r.Favorite) {
			continue
		}
		cat := "-"
		if c := s.SkillCategory(r.ID); c != nil {
			cat = c.Name()
		}
		mark := ""
		if r.Favorite {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			sk.Name(), cat, strconv.FormatFloat(r.Value, 'f', -1, 64), s.SkillTotalBonus(r.ID), mark)
	}
	tw.Flush()
}

func printSummaries(w io.Writer, md *data.MetaData, list []db.SheetSummary) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tLEVEL\tRACE\tPROFESSION\tUPDATED")
	for _, s := range list {
		race, prof := strconv.Itoa(s.RaceID), strconv.Itoa(s.ProfessionID)
		if r := md.Race(s.RaceID); r != nil {
			race = r.Name()
		}
		if p := md.Profession(s.ProfessionID); p != nil {
			prof = p.Name()
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			s.ID, s.Name, s.Level, race, prof, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	tw.Flush()
}
