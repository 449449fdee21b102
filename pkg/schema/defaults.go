package schema

// Defaults returns a registry preloaded with the log files a vehicle
// session is known to produce.
func Defaults() *Registry {
	r := New()

	r.Register("rov_data", "depth.log", []string{
		"depth", "target_depth", "depth_error", "mode", "depth_sensor_reading",
	})
	r.Register("rov_data", "motor.log", []string{"motor_inputs"})
	r.Register("rov_data", "orientation.log", []string{"roll", "pitch", "yaw"})
	r.Register("rov_data", "target_orientation.log", []string{
		"target_roll", "target_pitch", "target_yaw",
	})

	r.Register("sensor_data", "analog_circuit_data.log", []string{
		"motor_voltage_left", "motor_voltage_right",
		"motor_current_left", "motor_current_right",
		"current_5v", "voltage_5v", "current_battery",
	})
	r.Register("sensor_data", "pressure_sensor.log", []string{
		"pressure_mbar", "water_temp_c", "depth_m",
	})
	r.Register("sensor_data", "sonar.log", []string{"sonar_altitude_m", "confidence_pct"})
	r.Register("sensor_data", "temperature_data.log", []string{
		"front_temp_1", "front_temp_2", "front_temp_3", "front_temp_4",
		"back_temp_1", "back_temp_2", "back_temp_3", "back_temp_4",
	})

	return r
}
