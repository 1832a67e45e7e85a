package calibration

// vehicleRows is the population vehicle mix: the models most commonly seen on
// UK quote flows with list price when new and a relative sampling weight.
// Electric entries carry a zero engine displacement. Current value, insurance
// group and plate are derived at generation time from registration year.
var vehicleRows = []VehicleSpec{
	{"ford_fiesta_10", "Ford", "Fiesta", "petrol", "hatchback", 998, 19500, 5.2},
	{"ford_focus_10", "Ford", "Focus", "petrol", "hatchback", 999, 24500, 4.4},
	{"ford_puma_10", "Ford", "Puma", "petrol", "suv", 999, 26000, 2.4},
	{"ford_kuga_15", "Ford", "Kuga", "petrol", "suv", 1497, 32000, 1.9},
	{"ford_smax_15", "Ford", "S-Max", "petrol", "mpv", 1499, 35000, 0.7},
	{"ford_ranger_20d", "Ford", "Ranger", "diesel", "pickup", 1996, 38500, 0.7},
	{"ford_transit_custom_20d", "Ford", "Transit Custom", "diesel", "van", 1995, 36000, 1.8},
	{"vauxhall_corsa_12", "Vauxhall", "Corsa", "petrol", "hatchback", 1199, 19000, 4.6},
	{"vauxhall_astra_12", "Vauxhall", "Astra", "petrol", "hatchback", 1199, 25000, 3.2},
	{"vauxhall_mokka_12", "Vauxhall", "Mokka", "petrol", "suv", 1199, 26500, 1.7},
	{"vw_golf_15", "Volkswagen", "Golf", "petrol", "hatchback", 1498, 28000, 4.0},
	{"vw_polo_10", "Volkswagen", "Polo", "petrol", "hatchback", 999, 21000, 3.4},
	{"vw_id3", "Volkswagen", "ID.3", "electric", "hatchback", 0, 37500, 0.7},
	{"vw_transporter_20d", "Volkswagen", "Transporter", "diesel", "van", 1968, 40000, 0.9},
	{"nissan_qashqai_13", "Nissan", "Qashqai", "petrol", "suv", 1332, 28500, 3.8},
	{"nissan_juke_10", "Nissan", "Juke", "petrol", "suv", 999, 23000, 2.4},
	{"nissan_leaf", "Nissan", "Leaf", "electric", "hatchback", 0, 29000, 1.1},
	{"mini_cooper_15", "MINI", "Cooper", "petrol", "hatchback", 1499, 23500, 2.6},
	{"toyota_yaris_15_hybrid", "Toyota", "Yaris", "hybrid", "hatchback", 1490, 23000, 2.8},
	{"toyota_corolla_18_hybrid", "Toyota", "Corolla", "hybrid", "hatchback", 1798, 31000, 2.2},
	{"toyota_aygo_10", "Toyota", "Aygo X", "petrol", "hatchback", 998, 17000, 1.0},
	{"toyota_rav4_25_phev", "Toyota", "RAV4", "plug_in_hybrid", "suv", 2487, 45500, 0.8},
	{"kia_sportage_16", "Kia", "Sportage", "petrol", "suv", 1598, 29500, 2.6},
	{"kia_picanto_10", "Kia", "Picanto", "petrol", "hatchback", 998, 15500, 0.9},
	{"kia_eniro", "Kia", "e-Niro", "electric", "suv", 0, 37000, 0.9},
	{"hyundai_tucson_16", "Hyundai", "Tucson", "petrol", "suv", 1598, 30000, 2.3},
	{"hyundai_i10_10", "Hyundai", "i10", "petrol", "hatchback", 998, 16000, 0.8},
	{"bmw_1series_15", "BMW", "1 Series", "petrol", "hatchback", 1499, 31000, 2.0},
	{"bmw_3series_20d", "BMW", "3 Series", "diesel", "saloon", 1995, 39000, 2.2},
	{"bmw_4series_20_conv", "BMW", "4 Series Convertible", "petrol", "convertible", 1998, 48000, 0.5},
	{"bmw_x3_20d", "BMW", "X3", "diesel", "suv", 1995, 49000, 0.8},
	{"audi_a3_15", "Audi", "A3", "petrol", "hatchback", 1498, 30500, 2.1},
	{"audi_a4_20d", "Audi", "A4", "diesel", "saloon", 1968, 40000, 1.7},
	{"audi_tt_20", "Audi", "TT", "petrol", "coupe", 1984, 41000, 0.4},
	{"mercedes_aclass_13", "Mercedes-Benz", "A-Class", "petrol", "hatchback", 1332, 33000, 2.0},
	{"mercedes_cclass_20d", "Mercedes-Benz", "C-Class", "diesel", "saloon", 1993, 45000, 1.5},
	{"tesla_model3", "Tesla", "Model 3", "electric", "saloon", 0, 43000, 1.6},
	{"tesla_modely", "Tesla", "Model Y", "electric", "suv", 0, 47000, 1.3},
	{"mg_zs_ev", "MG", "ZS EV", "electric", "suv", 0, 31000, 0.8},
	{"peugeot_208_12", "Peugeot", "208", "petrol", "hatchback", 1199, 21500, 2.2},
	{"peugeot_3008_12", "Peugeot", "3008", "petrol", "suv", 1199, 30500, 1.6},
	{"renault_clio_10", "Renault", "Clio", "petrol", "hatchback", 999, 19500, 2.1},
	{"renault_captur_13", "Renault", "Captur", "petrol", "suv", 1333, 24500, 1.4},
	{"skoda_octavia_15", "Skoda", "Octavia", "petrol", "estate", 1498, 28000, 1.6},
	{"skoda_fabia_10", "Skoda", "Fabia", "petrol", "hatchback", 999, 19000, 1.3},
	{"seat_ibiza_10", "SEAT", "Ibiza", "petrol", "hatchback", 999, 19500, 1.2},
	{"seat_leon_15", "SEAT", "Leon", "petrol", "hatchback", 1498, 26000, 1.1},
	{"honda_civic_10", "Honda", "Civic", "petrol", "hatchback", 988, 27000, 1.2},
	{"honda_jazz_15_hybrid", "Honda", "Jazz", "hybrid", "hatchback", 1498, 24500, 1.0},
	{"mazda_mx5_15", "Mazda", "MX-5", "petrol", "convertible", 1496, 28500, 0.5},
	{"volvo_xc40_15_phev", "Volvo", "XC40", "plug_in_hybrid", "suv", 1477, 43500, 0.7},
	{"landrover_discovery_sport_20d", "Land Rover", "Discovery Sport", "diesel", "suv", 1999, 42000, 0.9},
	{"range_rover_evoque_20d", "Land Rover", "Range Rover Evoque", "diesel", "suv", 1999, 45000, 1.0},
	{"citroen_berlingo_15d", "Citroen", "Berlingo", "diesel", "mpv", 1499, 27500, 0.6},
	{"dacia_sandero_10", "Dacia", "Sandero", "petrol", "hatchback", 999, 14500, 1.3},
	{"dacia_duster_13", "Dacia", "Duster", "petrol", "suv", 1333, 19500, 0.9},
	{"suzuki_swift_12_hybrid", "Suzuki", "Swift", "hybrid", "hatchback", 1197, 19000, 0.8},
	{"fiat_500_10_hybrid", "Fiat", "500", "hybrid", "hatchback", 999, 17500, 1.5},
	{"mitsubishi_outlander_24_phev", "Mitsubishi", "Outlander", "plug_in_hybrid", "suv", 2360, 38000, 0.5},
}
