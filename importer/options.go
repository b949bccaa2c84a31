package importer

import "bulkunit/config"

// OptionsFromConfig builds pipeline options from loaded configuration,
// layering any extra vocabulary and synonyms over the defaults.
func OptionsFromConfig(cfg config.Config) Options {
	opts := Options{
		PriceCeiling:   cfg.Import.PriceCeiling,
		RowAttribution: RowAttribution(cfg.Import.RowAttribution),
	}

	if len(cfg.Import.ExtraTypes) > 0 {
		opts.TypeVocabulary = append(DefaultTypeVocabulary(), cfg.Import.ExtraTypes...)
	}

	if len(cfg.Import.ExtraSynonyms) > 0 {
		synonyms := DefaultSynonyms()
		for field, spellings := range cfg.Import.ExtraSynonyms {
			synonyms[Field(field)] = append(synonyms[Field(field)], spellings...)
		}
		opts.Synonyms = synonyms
	}

	return opts
}
